package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/store"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Database string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved circuit and its trace",
		Long: `Delete a saved circuit from the database. Its recorded tick trace is
removed with it.

Example:
  circuitry delete scratch --db circuits.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command, name string) error {
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

	if err := st.DeleteCircuit(context.Background(), name); err != nil {
		code := ErrCodeDatabase
		if errors.Is(err, store.ErrNotFound) {
			code = ErrCodeNotFound
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to delete circuit", err)
	}

	return formatter.Success(fmt.Sprintf("deleted %q", name))
}
