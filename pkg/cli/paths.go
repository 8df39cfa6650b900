package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the pcbuf directory structure.
type Paths struct {
	// AppName is the application name
	AppName string

	// BaseDir is the directory holding all application directories. It is
	// os.UserConfigDir() unless overridden by ConfigDirEnv.
	BaseDir string

	// override is set when ConfigDirEnv names the app directory directly.
	override string
}

// NewPaths creates a new Paths instance for the given app.
func NewPaths(appName string) (*Paths, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return &Paths{AppName: appName, override: dir}, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName: appName,
		BaseDir: base,
	}, nil
}

// AppDir returns the app-specific directory (<config dir>/<app>), or the
// ConfigDirEnv directory when set.
func (p *Paths) AppDir() string {
	if p.override != "" {
		return p.override
	}
	return filepath.Join(p.BaseDir, p.AppName)
}

// ConfigFile returns the config file path (<app dir>/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}
