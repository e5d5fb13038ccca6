package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <name>",
		Short: "Show a saved circuit's recorded tick trace",
		Long: `Print the recorded tick trace of a saved circuit, in tick order.

Ticks are recorded by "circuitry run --db". Each row shows the solve status,
iteration count and energized point count.

Example:
  circuitry trace blinker --db circuits.db
  circuitry trace blinker --db circuits.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

type traceRow struct {
	Tick       int    `json:"tick"`
	Status     string `json:"status"`
	Iterations int    `json:"iterations"`
	Energized  int    `json:"energized"`
}

type traceReport struct {
	Circuit string     `json:"circuit"`
	Ticks   []traceRow `json:"ticks"`
}

func (r traceReport) String() string {
	if len(r.Ticks) == 0 {
		return fmt.Sprintf("%s: no recorded ticks", r.Circuit)
	}
	var b strings.Builder
	for _, t := range r.Ticks {
		fmt.Fprintf(&b, "tick %d: %s (%d iterations, %d energized)\n",
			t.Tick, t.Status, t.Iterations, t.Energized)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runTrace(opts *TraceOptions, cmd *cobra.Command, name string) error {
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

	ctx := context.Background()

	// Resolve the name through the circuit table so a bad name reports
	// not-found instead of an empty trace.
	infos, err := st.ListCircuits(ctx)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list circuits", err)
	}
	var circuitID string
	for _, info := range infos {
		if info.Name == name {
			circuitID = info.ID
			break
		}
	}
	if circuitID == "" {
		err := fmt.Errorf("%q: %w", name, store.ErrNotFound)
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "circuit not found", err)
	}

	records, err := st.Trace(ctx, circuitID)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}

	report := traceReport{Circuit: name}
	for _, rec := range records {
		report.Ticks = append(report.Ticks, traceRow{
			Tick:       rec.Tick,
			Status:     rec.Status.String(),
			Iterations: rec.Iterations,
			Energized:  rec.Energized,
		})
	}
	return formatter.Success(report)
}
