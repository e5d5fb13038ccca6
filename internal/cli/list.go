package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved circuits",
		Long: `List every circuit saved in the database, newest first.

Example:
  circuitry list --db circuits.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

type circuitListing struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listReport struct {
	Circuits []circuitListing `json:"circuits"`
}

func (r listReport) String() string {
	if len(r.Circuits) == 0 {
		return "no saved circuits"
	}
	var b strings.Builder
	for _, c := range r.Circuits {
		fmt.Fprintf(&b, "%s\t%s\tupdated %s\n", c.Name, c.ID, c.UpdatedAt.Format(time.RFC3339))
	}
	return strings.TrimRight(b.String(), "\n")
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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

	infos, err := st.ListCircuits(context.Background())
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list circuits", err)
	}

	report := listReport{}
	for _, info := range infos {
		report.Circuits = append(report.Circuits, circuitListing{
			Name:      info.Name,
			ID:        info.ID,
			CreatedAt: info.CreatedAt,
			UpdatedAt: info.UpdatedAt,
		})
	}
	return formatter.Success(report)
}
