package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nazmul-nhb/nhb-express/internal/defs"
)

// Environment variable prefix, e.g. NHB_EXPRESS_AUTHOR_NAME.
const envPrefix = "NHB_EXPRESS"

// Loader reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
type Loader struct {
	v      *viper.Viper
	logger *slog.Logger
}

// NewLoader creates a Loader with defaults and environment bindings set up.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	v := viper.New()
	def := NewDefaultConfig()
	v.SetDefault("author.name", def.Author.Name)
	v.SetDefault("author.email", def.Author.Email)
	v.SetDefault("author.url", def.Author.URL)
	v.SetDefault("license", def.License)
	v.SetDefault("version", def.Version)
	v.SetDefault("defaults.database", def.Defaults.Database)
	v.SetDefault("defaults.package_manager", def.Defaults.PackageManager)
	v.SetDefault("templates_dir", "")
	v.SetDefault("catalog", "")
	v.SetDefault("prefix_output", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, logger: logger}
}

// BindFlag lets a command-line flag override key. The flag only wins when
// it was set explicitly.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}
	return nil
}

// Load merges the config file at path over the defaults and validates the
// result. An empty path means the default location, which may be absent;
// an explicit path must exist.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		def, err := DefaultPath()
		if err != nil {
			l.logger.Debug("no default config location", "error", err)
		}
		path = def
	}

	if path != "" {
		l.v.SetConfigFile(path)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
			switch {
			case missing && explicit:
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			case missing:
				l.logger.Debug("config file not found, using defaults", "path", path)
			default:
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			l.logger.Debug("config file loaded", "path", path)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.TemplatesDir = expandHome(cfg.TemplatesDir)
	cfg.Catalog = expandHome(cfg.Catalog)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/nhb-express/config.yaml, falling
// back to the platform user config directory.
func DefaultPath() (string, error) {
	if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
		return env, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, defs.ConfigDirName, defs.ConfigYAML), nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
