package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/circuit"
)

// ErrNotFound is returned when no circuit with the given name exists.
var ErrNotFound = errors.New("circuit not found")

// CircuitInfo is a saved circuit's metadata row.
type CircuitInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveCircuit persists the circuit under the given name and returns its ID.
// Saving to an existing name overwrites that circuit's document in place,
// keeping its ID and created_at.
//
// Names are normalized to NFC before storage so that visually identical
// names entered with different Unicode compositions resolve to one row.
func (s *Store) SaveCircuit(ctx context.Context, name string, c *circuit.Circuit) (string, error) {
	name, err := normalizeName(name)
	if err != nil {
		return "", err
	}

	var doc bytes.Buffer
	if err := circfile.Encode(&doc, c); err != nil {
		return "", fmt.Errorf("serializing circuit %q: %w", name, err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO circuits (id, name, document) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, id, name, doc.String())
	if err != nil {
		return "", fmt.Errorf("saving circuit %q: %w", name, err)
	}

	// On upsert the insert's ID is discarded; read back the winning row.
	var storedID string
	err = s.db.QueryRowContext(ctx, `SELECT id FROM circuits WHERE name = ?`, name).Scan(&storedID)
	if err != nil {
		return "", fmt.Errorf("reading back circuit %q: %w", name, err)
	}
	return storedID, nil
}

// LoadCircuit reads the circuit saved under name.
func (s *Store) LoadCircuit(ctx context.Context, name string) (*circuit.Circuit, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var doc string
	err = s.db.QueryRowContext(ctx, `SELECT document FROM circuits WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading circuit %q: %w", name, err)
	}

	c, err := circfile.Decode(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing stored circuit %q: %w", name, err)
	}
	return c, nil
}

// ListCircuits returns metadata for every saved circuit, newest first.
func (s *Store) ListCircuits(ctx context.Context) ([]CircuitInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM circuits
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing circuits: %w", err)
	}
	defer rows.Close()

	var infos []CircuitInfo
	for rows.Next() {
		var info CircuitInfo
		var created, updated string
		if err := rows.Scan(&info.ID, &info.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning circuit row: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteCircuit removes a saved circuit and, through the foreign key cascade,
// its recorded tick trace.
func (s *Store) DeleteCircuit(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM circuits WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting circuit %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting circuit %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// normalizeName trims and NFC-normalizes a circuit name.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return "", errors.New("circuit name must not be empty")
	}
	return name, nil
}
