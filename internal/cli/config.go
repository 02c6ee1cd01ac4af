package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string `env:"TDCTL_SERVER" envDefault:"http://localhost:8080"`
	AdminToken  string `env:"TDCTL_ADMIN_TOKEN"`
	SessionFile string `env:"TDCTL_SESSION_FILE"`
	Output      string `env:"TDCTL_OUTPUT" envDefault:"text"`
	Verbose     bool
}

// Session is the room context remembered between invocations
type Session struct {
	RoomID     string `json:"room_id"`
	RoomCode   string `json:"room_code"`
	PlayerID   string `json:"player_id,omitempty"`
	AdminToken string `json:"admin_token,omitempty"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		c.ServerURL = "http://localhost:8080"
		c.Output = "text"
	}
	if c.SessionFile == "" {
		c.SessionFile = defaultSessionFile()
	}
	return c
}

// LoadSession reads the saved session; a missing file yields an empty session
func (c *Config) LoadSession() (Session, error) {
	var s Session

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("corrupt session file %s: %w", c.SessionFile, err)
	}
	return s, nil
}

// SaveSession writes the session file with owner-only permissions
func (c *Config) SaveSession(s Session) error {
	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tdctl/session.json"
	}
	return filepath.Join(home, ".tdctl", "session.json")
}
