package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tburgert/circuitry/internal/harness"
)

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario.yaml> [scenario.yaml...]",
		Short: "Run simulation scenarios",
		Long: `Run one or more scenario files against their circuits.

Each scenario toggles inputs and ticks its circuit, checking statuses and
output states along the way. The command fails if any scenario misses an
expectation.

Example:
  circuitry test scenarios/latch.yaml
  circuitry test scenarios/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, cmd, args)
		},
	}

	return cmd
}

type scenarioReport struct {
	Name   string   `json:"name"`
	Passed bool     `json:"passed"`
	Ticks  int      `json:"ticks"`
	Errors []string `json:"errors,omitempty"`
}

type testReport struct {
	Scenarios []scenarioReport `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

func (r testReport) String() string {
	var b strings.Builder
	for _, s := range r.Scenarios {
		verdict := "PASS"
		if !s.Passed {
			verdict = "FAIL"
		}
		fmt.Fprintf(&b, "%s %s (%d ticks)\n", verdict, s.Name, s.Ticks)
		for _, msg := range s.Errors {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed", r.Passed, r.Failed)
	return b.String()
}

func runScenarios(opts *RootOptions, cmd *cobra.Command, paths []string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	report := testReport{}
	for _, path := range paths {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			formatter.Error(ErrCodeReadFailed, fmt.Sprintf("%s: %v", path, err), nil)
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}

		formatter.VerboseLog("running scenario %s (%s)", scenario.Name, scenario.Description)
		result, err := harness.Run(scenario)
		if err != nil {
			formatter.Error(ErrCodeGeneric, fmt.Sprintf("%s: %v", scenario.Name, err), nil)
			return WrapExitError(ExitCommandError, "scenario execution failed", err)
		}

		report.Scenarios = append(report.Scenarios, scenarioReport{
			Name:   scenario.Name,
			Passed: result.Passed,
			Ticks:  len(result.Trace),
			Errors: result.Errors,
		})
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	if report.Failed > 0 {
		formatter.Error(ErrCodeScenarioFailed, report.String(), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", report.Failed))
	}
	return formatter.Success(report)
}
