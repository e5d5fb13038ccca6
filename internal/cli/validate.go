package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/circuit"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <circuit.yaml>",
		Short: "Validate a circuit file",
		Long: `Validate a circuit file's placement data.

Checks that every component sits on the grid, that kinds and orientations are
known, and that no wire has zero length. All defects are reported, not just
the first.

Example:
  circuitry validate adder.yaml
  circuitry validate adder.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

type validateSummary struct {
	Circuit     string   `json:"circuit"`
	Wires       int      `json:"wires"`
	Nodes       int      `json:"nodes"`
	Transistors int      `json:"transistors"`
	Clocks      int      `json:"clocks"`
	Defects     []string `json:"defects,omitempty"`
}

func (s validateSummary) String() string {
	return fmt.Sprintf("%s: %d wires, %d nodes, %d transistors, %d clocks - OK",
		s.Circuit, s.Wires, s.Nodes, s.Transistors, s.Clocks)
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Decode without the load-time validation so every defect is collected,
	// not just the first.
	c, err := loadCircuitLenient(path)
	if err != nil {
		formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read circuit", err)
	}

	summary := validateSummary{
		Circuit:     path,
		Wires:       len(c.Wires),
		Nodes:       len(c.Nodes),
		Transistors: len(c.Transistors),
		Clocks:      len(c.Clocks),
	}

	if errs := circfile.Validate(c); len(errs) > 0 {
		for _, e := range errs {
			summary.Defects = append(summary.Defects, e.Error())
		}
		formatter.Error(ErrCodeInvalidCircuit,
			fmt.Sprintf("%s: %d defect(s)", path, len(summary.Defects)), summary.Defects)
		return NewExitError(ExitFailure, "circuit is invalid")
	}

	return formatter.Success(summary)
}

// loadCircuitLenient parses a circuit file without placement validation.
func loadCircuitLenient(path string) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return circfile.Decode(f)
}
