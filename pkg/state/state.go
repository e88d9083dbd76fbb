// Package state persists per-table UI preferences, currently the column
// visibility overrides chosen with the columns subcommands. Preferences are
// explicit overrides layered on top of each table's defaults, so an empty
// state file means "show whatever the table shows by default".
package state

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TableState holds the explicit visibility overrides for one table. Columns
// absent from the map follow the table's defaults.
type TableState struct {
	Columns map[string]bool `toml:"columns"`
}

// UIState is the full persisted preference file.
type UIState struct {
	Tables map[string]TableState `toml:"tables"`
}

// Store reads and writes UI preferences.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store rooted at the user config directory.
func NewStore(logger *slog.Logger) *Store {
	return NewStoreAt(filepath.Join(userConfigDir(), "hookctl", "ui.toml"), logger)
}

// NewStoreAt creates a store over an explicit file path.
func NewStoreAt(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the preference file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted state. A missing or unreadable file degrades to
// an empty state with a log line; preferences are never load-bearing enough
// to fail a command over.
func (s *Store) Load() *UIState {
	st := &UIState{Tables: map[string]TableState{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read UI state", "path", s.path, "error", err)
		}
		return st
	}
	if err := toml.Unmarshal(data, st); err != nil {
		s.logger.Warn("failed to parse UI state", "path", s.path, "error", err)
		return &UIState{Tables: map[string]TableState{}}
	}
	if st.Tables == nil {
		st.Tables = map[string]TableState{}
	}
	return st
}

// Save persists the state atomically.
func (s *Store) Save(st *UIState) error {
	out, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("state: marshal failed: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("state: mkdir failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ui.tmp-*")
	if err != nil {
		return fmt.Errorf("state: temp create failed: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(out); err != nil {
		return fmt.Errorf("state: temp write failed: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("state: chmod failed: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("state: sync failed: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("state: atomic rename failed: %w", err)
	}
	return nil
}

// TableColumns returns the persisted visibility overrides for a table. The
// returned map is a copy; mutating it does not change the store.
func (s *Store) TableColumns(table string) map[string]bool {
	st := s.Load()
	overrides := make(map[string]bool, len(st.Tables[table].Columns))
	for column, visible := range st.Tables[table].Columns {
		overrides[column] = visible
	}
	return overrides
}

// SetColumn records one column's visibility for a table.
func (s *Store) SetColumn(table, column string, visible bool) error {
	st := s.Load()
	ts := st.Tables[table]
	if ts.Columns == nil {
		ts.Columns = map[string]bool{}
	}
	ts.Columns[column] = visible
	st.Tables[table] = ts
	return s.Save(st)
}

// ResetTable removes all overrides for a table.
func (s *Store) ResetTable(table string) error {
	st := s.Load()
	if _, ok := st.Tables[table]; !ok {
		return nil
	}
	delete(st.Tables, table)
	return s.Save(st)
}

// userConfigDir resolves a configuration directory in a portable way.
func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config")
	}
	return "."
}
