// Package recorder journals play sessions and replays them.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateFileName is the state file kept in the nxcube directory.
const StateFileName = "state.json"

// AppState is the state carried between runs.
type AppState struct {
	DBPath          string `json:"db_path,omitempty"`
	ActiveSessionID string `json:"active_session_id,omitempty"`
	LastSize        int    `json:"last_size,omitempty"`
	LastMode        string `json:"last_mode,omitempty"`
	LastDeviceID    string `json:"last_device_id,omitempty"`
	LastDeviceName  string `json:"last_device_name,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// NewStateFile loads the state file at path. A missing file yields an
// empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// OpenStateFile loads the state file in dir, creating dir if needed.
func OpenStateFile(dir string) (*StateFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return NewStateFile(filepath.Join(dir, StateFileName))
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetActiveSession marks a session as in progress.
func (sf *StateFile) SetActiveSession(id string) error {
	sf.state.ActiveSessionID = id
	return sf.Save()
}

// ClearActiveSession clears the active session.
func (sf *StateFile) ClearActiveSession() error {
	sf.state.ActiveSessionID = ""
	return sf.Save()
}

// SetLastPuzzle remembers the size and mode last played.
func (sf *StateFile) SetLastPuzzle(n int, mode string) error {
	sf.state.LastSize = n
	sf.state.LastMode = mode
	return sf.Save()
}

// SetLastDevice remembers the last connected device.
func (sf *StateFile) SetLastDevice(id, name string) error {
	sf.state.LastDeviceID = id
	sf.state.LastDeviceName = name
	return sf.Save()
}

// ActiveSessionID returns the session left open by the last run, if any.
func (sf *StateFile) ActiveSessionID() string {
	return sf.state.ActiveSessionID
}
