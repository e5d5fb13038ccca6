package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/engine"
	"github.com/tburgert/circuitry/internal/geom"
	"github.com/tburgert/circuitry/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Ticks         int
	Toggles       []string
	MaxIterations int
	Database      string
	Name          string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <circuit.yaml>",
		Short: "Simulate a circuit for a number of ticks",
		Long: `Load a circuit file, optionally toggle input nodes, and run the simulation.

Each tick advances every clock once and resolves the signal state to a fixed
point. The per-tick status, iteration count and output states are reported.
With --db, the circuit and its tick trace are also recorded in the database.

Example:
  circuitry run adder.yaml --ticks 8
  circuitry run adder.yaml --toggle 0,0 --toggle 200,200 --ticks 1
  circuitry run blinker.yaml --ticks 32 --db circuits.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Ticks, "ticks", 1, "number of ticks to simulate")
	cmd.Flags().StringArrayVar(&opts.Toggles, "toggle", nil, "input node to toggle before ticking, as x,y (repeatable)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", engine.DefaultMaxIterations, "per-tick solver iteration cap")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for trace recording (optional)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "circuit name in the database (defaults to the file path)")

	return cmd
}

type tickReport struct {
	Tick       int           `json:"tick"`
	Status     string        `json:"status"`
	Iterations int           `json:"iterations"`
	Outputs    []outputState `json:"outputs,omitempty"`
}

type outputState struct {
	X  int  `json:"x"`
	Y  int  `json:"y"`
	On bool `json:"on"`
}

type runReport struct {
	Circuit string       `json:"circuit"`
	Ticks   []tickReport `json:"ticks"`
}

func (r runReport) String() string {
	var b strings.Builder
	for _, t := range r.Ticks {
		fmt.Fprintf(&b, "tick %d: %s (%d iterations)", t.Tick, t.Status, t.Iterations)
		for _, o := range t.Outputs {
			state := "off"
			if o.On {
				state = "on"
			}
			fmt.Fprintf(&b, " (%d,%d)=%s", o.X, o.Y, state)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func runSimulation(opts *RunOptions, cmd *cobra.Command, path string) error {
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

	if opts.Ticks < 1 {
		formatter.Error(ErrCodeGeneric, "--ticks must be at least 1", nil)
		return NewExitError(ExitCommandError, "invalid tick count")
	}

	for _, raw := range opts.Toggles {
		p, err := parsePoint(raw)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid toggle", err)
		}
		if !c.ToggleInputAt(p) {
			msg := fmt.Sprintf("no input node at (%d, %d)", p.X, p.Y)
			formatter.Error(ErrCodeGeneric, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
	}

	// Optional trace recording.
	var (
		st        *store.Store
		circuitID string
	)
	ctx := context.Background()
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		name := opts.Name
		if name == "" {
			name = path
		}
		circuitID, err = st.SaveCircuit(ctx, name, c)
		if err != nil {
			formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to save circuit", err)
		}
		formatter.VerboseLog("recording trace for %s (id %s)", name, circuitID)
	}

	eng := engine.New(engine.WithMaxIterations(opts.MaxIterations))
	report := runReport{Circuit: path}

	for tick := 1; tick <= opts.Ticks; tick++ {
		res := eng.Tick(c)
		report.Ticks = append(report.Ticks, tickReport{
			Tick:       tick,
			Status:     res.Status.String(),
			Iterations: res.Iterations,
			Outputs:    collectOutputs(c),
		})
		if st != nil {
			if err := st.RecordTick(ctx, circuitID, tick, res); err != nil {
				formatter.Error(ErrCodeDatabase, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to record tick", err)
			}
		}
	}

	return formatter.Success(report)
}

// parsePoint parses "x,y" into a grid point.
func parsePoint(s string) (geom.Point, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	return geom.Pt(x, y), nil
}

// collectOutputs snapshots output node states in position order.
func collectOutputs(c *circuit.Circuit) []outputState {
	var outs []outputState
	for _, n := range c.Nodes {
		if n.Kind == circuit.NodeOutput {
			outs = append(outs, outputState{X: n.Position.X, Y: n.Position.Y, On: n.On})
		}
	}
	sort.Slice(outs, func(i, j int) bool {
		if outs[i].X != outs[j].X {
			return outs[i].X < outs[j].X
		}
		return outs[i].Y < outs[j].Y
	})
	return outs
}
