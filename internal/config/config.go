package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	FileName  = ".stpack.toml"
	EnvPrefix = "STPACK"
)

// Config is the full stpack configuration.
type Config struct {
	Properties PropertiesConfig `mapstructure:"properties"`
	Packager   PackagerConfig   `mapstructure:"packager"`
}

// PropertiesConfig controls where the version is resolved from.
type PropertiesConfig struct {
	// File is an explicit gradle.properties path. Empty means the
	// anchor-relative default (two levels above the anchor).
	File string `mapstructure:"file"`

	// Key is the property holding the version.
	Key string `mapstructure:"key"`
}

// PackagerConfig controls the external packaging tool handoff.
type PackagerConfig struct {
	// Command is the packaging tool argv. Empty means build stops after
	// writing the descriptor.
	Command []string `mapstructure:"command"`

	// DistDir is where the descriptor is written.
	DistDir string `mapstructure:"dist_dir"`
}

// Defaults returns a Config with all default values.
func Defaults() Config {
	return Config{
		Properties: PropertiesConfig{
			Key: "VERSION_NAME",
		},
		Packager: PackagerConfig{
			DistDir: "dist",
		},
	}
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Properties.Key == "" {
		return fmt.Errorf("properties.key cannot be empty")
	}
	if c.Packager.DistDir == "" {
		return fmt.Errorf("packager.dist_dir cannot be empty")
	}
	for _, arg := range c.Packager.Command {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("packager.command contains an empty argument")
		}
	}
	return nil
}

// Load reads configuration from .stpack.toml (discovered by walking up
// from startDir), environment variables (STPACK_*), and applies defaults.
// CLI flag overrides should be applied by the caller after Load returns.
func Load(startDir string) (Config, string, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v, cfg)

	configPath := FindConfig(startDir)
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("reading %s: %w", configPath, err)
		}
	}

	decoderOpt := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToBasicTypeHookFunc(),
		mapstructure.StringToSliceHookFunc(" "),
	))
	if err := v.Unmarshal(&cfg, decoderOpt); err != nil {
		return Config{}, "", fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}

	return cfg, configPath, nil
}

// FindConfig walks up from startDir looking for .stpack.toml.
// Returns the path if found, empty string otherwise.
func FindConfig(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func setViperDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("properties.file", cfg.Properties.File)
	v.SetDefault("properties.key", cfg.Properties.Key)
	v.SetDefault("packager.command", cfg.Packager.Command)
	v.SetDefault("packager.dist_dir", cfg.Packager.DistDir)
}
