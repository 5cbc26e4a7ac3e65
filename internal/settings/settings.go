package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emRival/rekap-absensi/internal/calendar"
	"github.com/emRival/rekap-absensi/internal/role"
)

// HomeEnv names the environment variable that overrides the settings directory.
const HomeEnv = "REKAP_HOME"

// Config is the persisted user configuration stored in config.json.
type Config struct {
	Default string               `json:"default,omitempty"`
	Roles   map[string]role.Spec `json:"roles,omitempty"`
	DaysOff []string             `json:"days_off,omitempty"`
}

// Dir returns the rekap settings directory. REKAP_HOME wins over homeDir.
func Dir(homeDir string) string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	return filepath.Join(homeDir, ".rekap")
}

// ConfigPath returns the path to config.json.
func ConfigPath(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.json")
}

// ReadConfig reads the persisted configuration.
// Returns an empty config if the file does not exist.
func ReadConfig(homeDir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigPath(homeDir), err)
	}
	return &cfg, nil
}

// WriteConfig writes the configuration, creating the directory if needed.
func WriteConfig(homeDir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(homeDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(homeDir), data, 0644)
}

// RemoveConfig deletes config.json. A missing file is not an error.
func RemoveConfig(homeDir string) error {
	err := os.Remove(ConfigPath(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Document returns the role overrides held by cfg.
func (cfg *Config) Document() role.Document {
	return role.Document{Default: cfg.Default, Roles: cfg.Roles}
}

// Table layers the persisted role overrides on top of base.
func (cfg *Config) Table(base *role.Table) (*role.Table, error) {
	return cfg.Document().Apply(base)
}

// SetRole stores c, replacing any override with the same name.
func (cfg *Config) SetRole(c role.Config) {
	if cfg.Roles == nil {
		cfg.Roles = make(map[string]role.Spec)
	}
	cfg.Roles[role.NormalizeName(c.Name)] = role.SpecOf(c)
}

// DayOffRules parses the persisted days off.
func (cfg *Config) DayOffRules() ([]calendar.DayOff, error) {
	return calendar.ParseDaysOff(cfg.DaysOff)
}
