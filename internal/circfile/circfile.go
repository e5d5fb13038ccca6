// Package circfile reads and writes circuit definitions as YAML documents.
//
// A circuit file carries only placement data: positions, kinds, orientations,
// clock frequencies and the persisted On flags of input nodes. Derived state
// (wire on, transistor conducting, clock phase) is never serialized; it is
// recomputed by the first tick after loading.
package circfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/geom"
)

// ValidationError describes a single defect in a circuit file.
type ValidationError struct {
	Component string
	Index     int
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Component, e.Index, e.Message)
}

// Decode parses a circuit document from r. It checks syntax and schema only;
// run Validate for placement checks.
func Decode(r io.Reader) (*circuit.Circuit, error) {
	c := circuit.New()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if err == io.EOF {
			return c, nil
		}
		return nil, fmt.Errorf("decoding circuit: %w", err)
	}
	return c, nil
}

// Encode writes the circuit as a YAML document to w.
func Encode(w io.Writer, c *circuit.Circuit) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding circuit: %w", err)
	}
	return enc.Close()
}

// Load reads and validates a circuit file.
func Load(path string) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening circuit file: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if errs := Validate(c); len(errs) > 0 {
		return nil, fmt.Errorf("%s: invalid circuit: %w", path, errs[0])
	}
	return c, nil
}

// Save writes the circuit to path, replacing any existing file.
func Save(path string, c *circuit.Circuit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating circuit file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Validate collects every defect in the circuit's placement data: off-grid
// positions, unknown kinds and orientations, zero-length wires. It never stops
// at the first problem so editors can report all of them at once.
func Validate(c *circuit.Circuit) []error {
	var errs []error

	onGrid := func(p geom.Point) bool {
		return p.X%geom.GridSpacing == 0 && p.Y%geom.GridSpacing == 0
	}

	for i, w := range c.Wires {
		if !onGrid(w.Start) || !onGrid(w.End) {
			errs = append(errs, &ValidationError{"wires", i, "endpoints must sit on the grid"})
		}
		if w.Start == w.End {
			errs = append(errs, &ValidationError{"wires", i, "zero-length wire"})
		}
	}
	for i, n := range c.Nodes {
		if !onGrid(n.Position) {
			errs = append(errs, &ValidationError{"nodes", i, "position must sit on the grid"})
		}
		if n.Kind != circuit.NodeInput && n.Kind != circuit.NodeOutput {
			errs = append(errs, &ValidationError{"nodes", i, fmt.Sprintf("unknown kind %q", n.Kind)})
		}
	}
	for i, t := range c.Transistors {
		if !onGrid(t.Position) {
			errs = append(errs, &ValidationError{"transistors", i, "position must sit on the grid"})
		}
		if t.Kind != circuit.NType && t.Kind != circuit.PType {
			errs = append(errs, &ValidationError{"transistors", i, fmt.Sprintf("unknown kind %q", t.Kind)})
		}
		if t.Orientation != circuit.Horizontal && t.Orientation != circuit.Vertical {
			errs = append(errs, &ValidationError{"transistors", i, fmt.Sprintf("unknown orientation %q", t.Orientation)})
		}
	}
	for i, ck := range c.Clocks {
		if !onGrid(ck.Position) {
			errs = append(errs, &ValidationError{"clocks", i, "position must sit on the grid"})
		}
		if ck.Frequency < 0 {
			errs = append(errs, &ValidationError{"clocks", i, fmt.Sprintf("negative frequency %d", ck.Frequency)})
		}
	}

	return errs
}
