// Package config loads deploycheck settings from defaults, an optional
// TOML file, a .env file and DEPLOYCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/vertti/deploycheck/pkg/logger"
)

// FileName is the configuration file looked up in the root directory.
const FileName = "deploycheck.toml"

// EnvPrefix prefixes environment overrides, e.g. DEPLOYCHECK_PYTHON.
const EnvPrefix = "DEPLOYCHECK"

// Probe configures the document generation probe.
type Probe struct {
	Dir  string `mapstructure:"dir" toml:"dir"`
	File string `mapstructure:"file" toml:"file"`
}

// Config holds all deploycheck settings.
type Config struct {
	AppName           string        `mapstructure:"app_name" toml:"app_name"`
	Directories       []string      `mapstructure:"directories" toml:"directories"`
	Dependencies      []string      `mapstructure:"dependencies" toml:"dependencies"`
	Python            string        `mapstructure:"python" toml:"python"`
	DependencyTimeout string        `mapstructure:"dependency_timeout" toml:"dependency_timeout"`
	Probe             Probe         `mapstructure:"probe" toml:"probe"`
	Log               logger.Config `mapstructure:"log" toml:"log"`

	// Root is the directory relative paths are resolved against.
	Root string `mapstructure:"-" toml:"-"`
	// Source is the configuration file that was read, if any.
	Source string `mapstructure:"-" toml:"-"`
}

// Default returns the built-in configuration for the coaching class app.
func Default() *Config {
	return &Config{
		AppName: "Padashetty Coaching Class Application",
		Directories: []string{
			"backend",
			"frontend",
			"backend/uploads",
			"backend/uploads/admission_forms",
			"backend/uploads/notes",
			"backend/uploads/test_results",
		},
		Dependencies: []string{
			"flask",
			"flask_cors",
			"flask_sqlalchemy",
			"reportlab",
			"dotenv",
			"jwt",
		},
		Python:            "python3",
		DependencyTimeout: "30s",
		Probe: Probe{
			Dir:  "backend/test_output",
			File: "deployment_test.pdf",
		},
		Log: logger.Config{
			Level:  "warn",
			Format: "console",
		},
		Root: ".",
	}
}

// Load builds the configuration for root. explicitPath, when non-empty,
// must name a readable TOML file; otherwise root/deploycheck.toml is used
// if present.
func Load(root, explicitPath string) (*Config, error) {
	if root == "" {
		root = "."
	}

	// Missing .env is normal outside development.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := FindFile(root, explicitPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Root = root
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindFile resolves the configuration file to read. It returns "" and no
// error when no file is configured and none exists in root.
func FindFile(root, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	candidate := filepath.Join(root, FileName)
	info, err := os.Stat(candidate)
	switch {
	case err == nil && !info.IsDir():
		return candidate, nil
	case err == nil, errors.Is(err, os.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("app_name", d.AppName)
	v.SetDefault("directories", d.Directories)
	v.SetDefault("dependencies", d.Dependencies)
	v.SetDefault("python", d.Python)
	v.SetDefault("dependency_timeout", d.DependencyTimeout)
	v.SetDefault("probe.dir", d.Probe.Dir)
	v.SetDefault("probe.file", d.Probe.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return errors.New("app_name must not be empty")
	}
	if strings.TrimSpace(c.Python) == "" {
		return errors.New("python must not be empty")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Probe.Dir == "" {
		return errors.New("probe.dir must not be empty")
	}
	if c.Probe.File == "" || c.Probe.File != filepath.Base(c.Probe.File) {
		return fmt.Errorf("probe.file must be a plain file name, got %q", c.Probe.File)
	}
	if !slices.Contains(logger.Levels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logger.Levels, ", "), c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// Timeout parses DependencyTimeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.DependencyTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid dependency_timeout %q: %w", c.DependencyTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("dependency_timeout must be positive, got %s", d)
	}
	return d, nil
}

// MarshalTOML encodes the configuration as TOML.
func (c *Config) MarshalTOML() ([]byte, error) {
	return toml.Marshal(c)
}

// WriteFile writes the configuration to path. An existing file is only
// replaced when force is set.
func (c *Config) WriteFile(path string, force bool) error {
	data, err := c.MarshalTOML()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644) //nolint:gosec // path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
