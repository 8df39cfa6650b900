package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

const (
	// AppName is the application directory name under the config directory.
	AppName = "pcbuf"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
	// ConfigDirEnv overrides the application configuration directory.
	ConfigDirEnv = "PCBUF_CONFIG_DIR"
)

var (
	// ErrProfileNotFound is returned when a named profile does not exist.
	ErrProfileNotFound = errors.New("cli: profile not found")

	// ErrProfileExists is returned when adding a profile under a taken name.
	ErrProfileExists = errors.New("cli: profile already exists")
)

// Config represents the pcbuf configuration file.
type Config struct {
	// CurrentProfile is the name of the profile used when none is given
	CurrentProfile string `yaml:"current_profile,omitempty"`

	// Profiles maps a profile name to its run configuration
	Profiles map[string]*orchestrator.Config `yaml:"profiles,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// LoadConfig loads or creates the configuration at the default location.
func LoadConfig() (*Config, error) {
	paths, err := NewPaths(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return LoadConfigWithPath(paths.ConfigFile())
}

// LoadConfigWithPath loads configuration from a custom path. A missing file
// yields an empty configuration that is written on first Save. Unknown keys,
// including misspelled profile fields, are an error.
func LoadConfigWithPath(configPath string) (*Config, error) {
	cfg := &Config{
		Profiles:   make(map[string]*orchestrator.Config),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*orchestrator.Config)
	}
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(c.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// ValidateProfileName checks that a profile name is usable as a map key and
// on the command line.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\n/\\") {
		return fmt.Errorf("profile name %q must not contain whitespace or path separators", name)
	}
	return nil
}

// AddProfile stores a new profile. The run configuration is validated first.
func (c *Config) AddProfile(name string, run orchestrator.Config) error {
	if err := ValidateProfileName(name); err != nil {
		return err
	}
	if _, ok := c.Profiles[name]; ok {
		return fmt.Errorf("%w: %q", ErrProfileExists, name)
	}
	if err := run.Validate(); err != nil {
		return err
	}
	c.Profiles[name] = &run
	return c.Save()
}

// DeleteProfile removes a profile
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns a copy of a specific profile
func (c *Config) GetProfile(name string) (orchestrator.Config, error) {
	p, ok := c.Profiles[name]
	if !ok || p == nil {
		return orchestrator.Config{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return *p, nil
}

// ResolveProfile returns the named profile, or the current profile if name
// is empty, or orchestrator.DefaultConfig() if no profile is selected.
func (c *Config) ResolveProfile(name string) (orchestrator.Config, error) {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return orchestrator.DefaultConfig(), nil
	}
	return c.GetProfile(name)
}

// ListProfiles returns all profile names in lexical order
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
