package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database string
	Output   string
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Export a saved circuit from the database",
		Long: `Read a saved circuit from the database and write its YAML definition.

Without --output, the definition is written to stdout.

Example:
  circuitry load adder --db circuits.db
  circuitry load adder --db circuits.db --output adder.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the circuit YAML to this file instead of stdout")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLoad(opts *LoadOptions, cmd *cobra.Command, name string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	c, err := st.LoadCircuit(context.Background(), name)
	if err != nil {
		code := ErrCodeDatabase
		if errors.Is(err, store.ErrNotFound) {
			code = ErrCodeNotFound
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load circuit", err)
	}

	if opts.Output != "" {
		if err := circfile.Save(opts.Output, c); err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write circuit file", err)
		}
		return formatter.Success(fmt.Sprintf("wrote %q to %s", name, opts.Output))
	}

	// The circuit document goes to stdout verbatim; the --format flag only
	// shapes command metadata, not the exported YAML.
	if err := circfile.Encode(cmd.OutOrStdout(), c); err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to encode circuit", err)
	}
	return nil
}
