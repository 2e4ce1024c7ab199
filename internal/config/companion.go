package config

import (
	"path/filepath"

	"github.com/spf13/pflag"
)

// CompanionArgs returns the flags that make a companion process resolve the
// same store and log level as this one. configPath is the file this config
// was loaded from, or empty.
func (c *Config) CompanionArgs(configPath string) []string {
	var args []string
	if configPath != "" {
		args = append(args, "--config", absPath(configPath))
	}
	return append(args,
		"--store-dir", absPath(c.Store.Dir),
		"--namespace", c.Store.Namespace,
		"--log-level", c.Log.Level,
	)
}

// CompanionFlags are the companion's command-line settings. The values
// passed by the main window win over whatever the config file says.
type CompanionFlags struct {
	ConfigPath string
	StoreDir   string
	Namespace  string
	LogLevel   string
}

// Bind registers the flags on fs
func (f *CompanionFlags) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file (.json or .yaml)")
	fs.StringVar(&f.StoreDir, "store-dir", "", "store directory shared with the main window")
	fs.StringVar(&f.Namespace, "namespace", "", "store key namespace")
	fs.StringVar(&f.LogLevel, "log-level", "", "override the configured log level")
}

// Resolve loads the config and applies the flag overrides
func (f *CompanionFlags) Resolve() (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.StoreDir != "" {
		cfg.Store.Dir = f.StoreDir
	}
	if f.Namespace != "" {
		cfg.Store.Namespace = f.Namespace
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	return cfg, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
