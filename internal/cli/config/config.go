package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. SUGAR_CACHE_BACKEND for cache.backend.
const EnvPrefix = "SUGAR"

// Config represents the sugar configuration
type Config struct {
	Declarations []string     `mapstructure:"declarations"`
	Cache        CacheConfig  `mapstructure:"cache"`
	Log          LogConfig    `mapstructure:"log"`
	Output       OutputConfig `mapstructure:"output"`
}

// CacheConfig selects the extraction cache
type CacheConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory lru none"`
	Size    int    `mapstructure:"size" validate:"required_if=Backend lru,gte=0"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// OutputConfig represents CLI output configuration
type OutputConfig struct {
	Format  string `mapstructure:"format" validate:"oneof=table json"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load loads the configuration. An empty path searches for sugar.yml or
// sugar.yaml from the working directory upwards; a missing file is not an
// error and leaves the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("declarations", []string{})
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sugar")
		v.SetConfigType("yaml")
		if root, err := FindProjectRoot(); err == nil {
			v.AddConfigPath(root)
		}
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Declaration paths are relative to the config file
	if used := v.ConfigFileUsed(); used != "" {
		base := filepath.Dir(used)
		for i, p := range config.Declarations {
			if !filepath.IsAbs(p) {
				config.Declarations[i] = filepath.Join(base, p)
			}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		problems := make([]error, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, fmt.Errorf("invalid %s: %q fails %s %s",
				configKey(fe.Namespace()), fmt.Sprint(fe.Value()), fe.Tag(), fe.Param()))
		}
		return errors.Join(problems...)
	}
	return nil
}

// configKey turns a validator namespace like Config.cache.backend into the
// config key cache.backend.
func configKey(namespace string) string {
	return strings.TrimPrefix(namespace, "Config.")
}

// NewCache builds the extraction cache selected by the configuration
func (c CacheConfig) NewCache() (metadata.Cache, error) {
	switch c.Backend {
	case "", "memory":
		return metadata.NewMemoryCache(), nil
	case "lru":
		cache, err := metadata.NewLRUCache(c.Size)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case "none":
		return metadata.NopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// FindProjectRoot looks for sugar.yml or sugar.yaml from the working directory
// upwards and returns the directory holding it.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"sugar.yml", "sugar.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no sugar.yml found")
		}
		dir = parent
	}
}
