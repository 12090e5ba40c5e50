package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/watchfire-io/widgethost/internal/config"
	"github.com/watchfire-io/widgethost/internal/models"
)

// State is the persisted widget state: the enabled map and last positions.
type State struct {
	Enabled   map[models.WidgetName]bool
	Positions map[models.WidgetName]models.Point
}

// NewState returns empty state.
func NewState() *State {
	return &State{
		Enabled:   make(map[models.WidgetName]bool),
		Positions: make(map[models.WidgetName]models.Point),
	}
}

// Resolve returns the initial position and visibility of a widget.
// Unknown widgets are visible at (0, 0).
func (s *State) Resolve(name models.WidgetName) (models.Point, bool) {
	visible := true
	if enabled, ok := s.Enabled[name]; ok && !enabled {
		visible = false
	}
	return s.Positions[name], visible
}

// Store reads and writes the state files.
type Store struct {
	EnabledPath   string
	PositionsPath string
}

// NewStore returns a store for the state files of an installation.
func NewStore(p config.Paths) *Store {
	return &Store{
		EnabledPath:   p.EnabledFile(),
		PositionsPath: p.PositionsFile(),
	}
}

// Load reads both state files. A missing file is empty state.
func (st *Store) Load() (*State, error) {
	state := NewState()

	enabled, err := loadEnabled(st.EnabledPath)
	if err != nil {
		return nil, err
	}
	state.Enabled = enabled

	positions, err := loadPositions(st.PositionsPath)
	if err != nil {
		return nil, err
	}
	state.Positions = positions

	return state, nil
}

// Save replaces both state files. Positions are written in the given order.
func (st *Store) Save(enabled map[models.WidgetName]bool, positions []models.PositionEntry) error {
	if positions == nil {
		positions = []models.PositionEntry{}
	}
	if enabled == nil {
		enabled = map[models.WidgetName]bool{}
	}

	if err := config.SaveJSON(st.EnabledPath, enabled); err != nil {
		return fmt.Errorf("failed to save enabled state: %w", err)
	}
	if err := config.SaveJSON(st.PositionsPath, positions); err != nil {
		return fmt.Errorf("failed to save positions: %w", err)
	}
	return nil
}

// Forget removes the named widgets from both state files. Without names,
// both files are removed.
func (st *Store) Forget(names ...models.WidgetName) error {
	if len(names) == 0 {
		for _, path := range []string{st.EnabledPath, st.PositionsPath} {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		return nil
	}

	state, err := st.Load()
	if err != nil {
		return err
	}

	drop := make(map[models.WidgetName]bool, len(names))
	for _, name := range names {
		drop[name] = true
		delete(state.Enabled, name)
	}

	// Rebuild the list from the raw file to keep its order.
	var entries []models.PositionEntry
	if config.FileExists(st.PositionsPath) {
		if err := config.LoadJSON(st.PositionsPath, &entries); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
	}
	kept := make([]models.PositionEntry, 0, len(entries))
	for _, e := range entries {
		if !drop[e.Name] {
			kept = append(kept, e)
		}
	}

	return st.Save(state.Enabled, kept)
}

func loadEnabled(path string) (map[models.WidgetName]bool, error) {
	enabled := make(map[models.WidgetName]bool)
	if !config.FileExists(path) {
		return enabled, nil
	}

	var raw map[string]json.RawMessage
	if err := config.LoadJSON(path, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// Only literal booleans are accepted; anything else is a configuration
	// error rather than a guess.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch string(raw[name]) {
		case "true":
			enabled[models.WidgetName(name)] = true
		case "false":
			enabled[models.WidgetName(name)] = false
		default:
			return nil, fmt.Errorf("%w: %s: %q is %s, want true or false", ErrInvalidState, path, name, raw[name])
		}
	}

	return enabled, nil
}

func loadPositions(path string) (map[models.WidgetName]models.Point, error) {
	positions := make(map[models.WidgetName]models.Point)
	if !config.FileExists(path) {
		return positions, nil
	}

	var entries []models.PositionEntry
	if err := config.LoadJSON(path, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// Later entries win on duplicate names.
	for _, e := range entries {
		positions[e.Name] = e.Point()
	}
	return positions, nil
}
