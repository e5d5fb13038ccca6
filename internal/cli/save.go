package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Database string
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <name> <circuit.yaml>",
		Short: "Save a circuit file into the database",
		Long: `Validate a circuit file and store it in the database under a name.

Saving to an existing name overwrites that circuit's definition in place.

Example:
  circuitry save adder adder.yaml --db circuits.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

type saveSummary struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

func (s saveSummary) String() string {
	return fmt.Sprintf("saved %q (id %s)", s.Name, s.ID)
}

func runSave(opts *SaveOptions, cmd *cobra.Command, name, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := circfile.Load(path)
	if err != nil {
		formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load circuit", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	id, err := st.SaveCircuit(context.Background(), name, c)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to save circuit", err)
	}

	return formatter.Success(saveSummary{Name: name, ID: id})
}
