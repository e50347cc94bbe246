package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rohankatakam/gitclock/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. GITCLOCK_STATS_MAX_COMMIT_DIFF
const EnvPrefix = "GITCLOCK"

// Config holds all configuration settings
type Config struct {
	// Statistics defaults, overridable per run by flags
	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`

	// Report store configuration
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Process logging
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

type StatsConfig struct {
	MaxCommitDiff  int      `mapstructure:"max_commit_diff" yaml:"max_commit_diff"`   // minutes
	FirstCommitAdd int      `mapstructure:"first_commit_add" yaml:"first_commit_add"` // minutes
	Since          string   `mapstructure:"since" yaml:"since"`
	Until          string   `mapstructure:"until" yaml:"until"`
	MergeRequests  bool     `mapstructure:"merge_requests" yaml:"merge_requests"`
	Emails         []string `mapstructure:"emails" yaml:"emails"` // OTHER_EMAIL=MAIN_EMAIL
	Branch         string   `mapstructure:"branch" yaml:"branch"`
	BranchType     string   `mapstructure:"branch_type" yaml:"branch_type"` // local, remote
	Format         string   `mapstructure:"format" yaml:"format"`           // stdout, json, yaml
}

type StorageConfig struct {
	Type        string `mapstructure:"type" yaml:"type"` // "sqlite", "postgres", "bolt"
	LocalPath   string `mapstructure:"local_path" yaml:"local_path"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // simple, context
}

// DefaultLocalPath is the store file used when storage.local_path is unset.
// Each local store kind gets its own file so switching kinds never opens a
// file written by the other engine.
func DefaultLocalPath(storeType string) string {
	homeDir, _ := os.UserHomeDir()
	name := "reports.db"
	if strings.EqualFold(storeType, "bolt") {
		name = "reports.bolt"
	}
	return filepath.Join(homeDir, ".gitclock", name)
}

// Default returns default configuration. Storage.LocalPath is left empty and
// filled per store kind by Load.
func Default() *Config {
	return &Config{
		Stats: StatsConfig{
			MaxCommitDiff:  120,
			FirstCommitAdd: 30,
			Since:          "always",
			Until:          "always",
			Emails:         []string{},
			BranchType:     "local",
			Format:         "stdout",
		},
		Storage: StorageConfig{
			Type: "sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "simple",
		},
	}
}

// Load loads configuration from file, environment and .env files.
// An empty path searches the standard locations; a missing file there is not an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".gitclock")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".gitclock"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to unmarshal config")
	}

	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = DefaultLocalPath(cfg.Storage.Type)
	}
	cfg.Storage.LocalPath = expandPath(cfg.Storage.LocalPath)

	return cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("stats.max_commit_diff", cfg.Stats.MaxCommitDiff)
	v.SetDefault("stats.first_commit_add", cfg.Stats.FirstCommitAdd)
	v.SetDefault("stats.since", cfg.Stats.Since)
	v.SetDefault("stats.until", cfg.Stats.Until)
	v.SetDefault("stats.merge_requests", cfg.Stats.MergeRequests)
	v.SetDefault("stats.emails", cfg.Stats.Emails)
	v.SetDefault("stats.branch", cfg.Stats.Branch)
	v.SetDefault("stats.branch_type", cfg.Stats.BranchType)
	v.SetDefault("stats.format", cfg.Stats.Format)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.local_path", cfg.Storage.LocalPath)
	v.SetDefault("storage.postgres_dsn", cfg.Storage.PostgresDSN)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	// godotenv.Load never overrides variables that are already set,
	// so earlier files win
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".gitclock", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("stats", c.Stats)
	v.Set("storage", c.Storage)
	v.Set("log", c.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
