package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tburgert/circuitry/internal/geom"
)

// Scenario defines a simulation test scenario: a circuit file plus a sequence
// of input toggles and tick counts, with expectations checked along the way.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden file
	// name and the circuit's name in the trace store.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Circuit is the path to the circuit YAML file, relative to the scenario
	// file's directory unless absolute.
	Circuit string `yaml:"circuit"`

	// Steps is the sequence of edits and ticks to run.
	Steps []Step `yaml:"steps"`
}

// Step toggles zero or more input nodes and then runs a number of ticks.
type Step struct {
	// Toggle lists input node positions to flip before ticking.
	Toggle []geom.Point `yaml:"toggle,omitempty"`

	// Ticks is the number of ticks to run for this step. Zero means one.
	Ticks int `yaml:"ticks,omitempty"`

	// Expect validates the state after the step's last tick.
	// If nil, the step only advances the simulation.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the state required after a step.
type Expect struct {
	// Status is the expected solve status name ("converged", "oscillating",
	// "iteration-limit-exceeded"). Empty skips the check.
	Status string `yaml:"status,omitempty"`

	// Outputs lists output nodes and their required states.
	Outputs []OutputExpect `yaml:"outputs,omitempty"`
}

// OutputExpect pins one output node's state.
type OutputExpect struct {
	At geom.Point `yaml:"at"`
	On bool       `yaml:"on"`
}

// LoadScenario reads and parses a scenario YAML file. The circuit path is
// resolved relative to the scenario file's directory. Unknown fields are
// rejected so typos fail loudly instead of silently skipping checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Circuit != "" && !filepath.IsAbs(scenario.Circuit) {
		scenario.Circuit = filepath.Join(filepath.Dir(path), scenario.Circuit)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Circuit == "" {
		return fmt.Errorf("circuit is required")
	}
	if _, err := os.Stat(s.Circuit); os.IsNotExist(err) {
		return fmt.Errorf("circuit file not found: %s", s.Circuit)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Ticks < 0 {
			return fmt.Errorf("steps[%d]: ticks must be non-negative", i)
		}
		if step.Expect != nil && step.Expect.Status != "" {
			switch step.Expect.Status {
			case "converged", "oscillating", "iteration-limit-exceeded":
			default:
				return fmt.Errorf("steps[%d].expect: unknown status %q", i, step.Expect.Status)
			}
		}
	}

	return nil
}
