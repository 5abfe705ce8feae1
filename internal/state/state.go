// Package state persists the authenticated identity between runs:
// the bearer token the service issued and who it belongs to. Nothing
// else is persisted; conversations live on the server.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const stateFile = "auth.json"

// State is the persisted login state. A zero State means anonymous.
type State struct {
	AccessToken string `json:"accessToken,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Username    string `json:"username,omitempty"`
}

// Identity returns the resolved user id when authenticated. Pass it to
// the chat controller via chat.IdentityFunc.
func (s *State) Identity() (string, bool) {
	return s.UserID, s.UserID != ""
}

// Authenticated reports whether a token is stored.
func (s *State) Authenticated() bool {
	return s.AccessToken != ""
}

// Path returns the state file location under the user config dir.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return stateFile
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tutor", stateFile)
}

// Load reads the persisted state. A missing file yields an anonymous
// state, not an error.
func Load() (*State, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the state, creating the config dir if needed. The file
// holds a bearer token, so it is not group or world readable.
func Save(s *State) error {
	return saveTo(Path(), s)
}

func saveTo(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear removes the persisted state. Missing state is not an error.
func Clear() error {
	err := os.Remove(Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
