// Package migration brings the slots schema of the SQL media up to the
// version embedded in the binary.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/logger"
)

// ErrSchemaTooNew means the database was written by a newer daybook.
var ErrSchemaTooNew = errors.New("database schema is newer than this daybook supports")

// Dialect selects the bind-parameter syntax of the target database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) bind(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Step is one NNN_name.sql file.
type Step struct {
	Version int
	Name    string
	SQL     string
}

// Status compares the applied schema with the embedded steps.
type Status struct {
	Applied int
	Latest  int
}

func (s Status) Pending() bool { return s.Applied < s.Latest }
func (s Status) TooNew() bool  { return s.Applied > s.Latest }

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type Migrator struct {
	db      *sql.DB
	dialect Dialect
	steps   []Step
}

// New parses every step in fsys up front so a bad file fails fast.
func New(db *sql.DB, fsys fs.FS, dialect Dialect) (*Migrator, error) {
	steps, err := ReadSteps(fsys)
	if err != nil {
		return nil, err
	}
	return &Migrator{db: db, dialect: dialect, steps: steps}, nil
}

// ReadSteps lists the .sql files at the root of fsys in version order.
func ReadSteps(fsys fs.FS) ([]Step, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var steps []Step
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		num, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
		if !ok || rest == "" {
			return nil, fmt.Errorf("migration %s: expected NNN_name.sql", name)
		}
		version, err := strconv.Atoi(num)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("migration %s: version must be a positive number", name)
		}
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		steps = append(steps, Step{Version: version, Name: rest, SQL: string(body)})
	}

	slices.SortFunc(steps, func(a, b Step) int { return a.Version - b.Version })
	for i := 1; i < len(steps); i++ {
		if steps[i].Version == steps[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", steps[i].Version)
		}
	}
	return steps, nil
}

// Latest is the newest embedded version, or 0 when there are no steps.
func (m *Migrator) Latest() int {
	if len(m.steps) == 0 {
		return 0
	}
	return m.steps[len(m.steps)-1].Version
}

// Applied reads the recorded schema version; a fresh database is version 0.
func (m *Migrator) Applied() (int, error) {
	if _, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_version: %w", err)
	}
	var version int
	err := m.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (m *Migrator) Status() (Status, error) {
	applied, err := m.Applied()
	if err != nil {
		return Status{}, err
	}
	return Status{Applied: applied, Latest: m.Latest()}, nil
}

// Check fails with ErrSchemaTooNew when the database is ahead of the binary.
func (m *Migrator) Check() error {
	st, err := m.Status()
	if err != nil {
		return err
	}
	if st.TooNew() {
		return fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, st.Applied, st.Latest)
	}
	return nil
}

// Up applies every pending step, each in its own transaction together with
// the version bump. It returns how many steps were applied.
func (m *Migrator) Up() (int, error) {
	if err := m.Check(); err != nil {
		return 0, err
	}
	applied, err := m.Applied()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	count := 0
	for _, step := range m.steps {
		if step.Version <= applied {
			continue
		}
		if err := m.apply(step); err != nil {
			return count, err
		}
		count++
		logger.Info("Applied migration", "version", step.Version, "name", step.Name)
	}

	if count > 0 {
		logger.Info("Schema migrated", "from", applied, "to", m.Latest(), "took", time.Since(start))
	} else {
		logger.Debug("Schema up to date", "version", applied)
	}
	return count, nil
}

func (m *Migrator) apply(step Step) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", step.Version, err)
	}
	if _, err := tx.Exec(step.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d (%s): %w", step.Version, step.Name, err)
	}
	if err := m.record(tx, step.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", step.Version, err)
	}
	return tx.Commit()
}

// SetVersion overwrites the recorded version.
func (m *Migrator) SetVersion(version int) error {
	if _, err := m.Applied(); err != nil {
		return err
	}
	return m.record(m.db, version)
}

func (m *Migrator) record(db execer, version int) error {
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := db.Exec("INSERT INTO schema_version (version) VALUES ("+m.dialect.bind(1)+")", version)
	return err
}
