package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/spf13/viper"
)

// Relationship grouping modes
const (
	// GroupInDatabase runs the aggregate Cypher query and lets Neo4j count
	GroupInDatabase = "database"
	// GroupLocally fetches one row per edge and counts in process
	GroupLocally = "local"
)

// Config holds all configuration settings
type Config struct {
	// Target preselects "local" or "remote"; empty shows the menu
	Target string `mapstructure:"target"`

	// Database selects a database for both targets; empty uses the
	// server's home database
	Database string `mapstructure:"database"`

	// QueryTimeout bounds each read transaction; zero means no timeout
	QueryTimeout time.Duration `mapstructure:"query_timeout"`

	// RelationshipGrouping is GroupInDatabase or GroupLocally
	RelationshipGrouping string `mapstructure:"relationship_grouping"`

	// Output is the table format, "grid" or "json"
	Output string `mapstructure:"output"`

	// CredentialsFile overrides ~/.config/dbstats/credentials.yaml
	CredentialsFile string `mapstructure:"credentials_file"`

	Log LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		RelationshipGrouping: GroupInDatabase,
		Output:               "grid",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from file, .env files and DBSTATS_* variables
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("target", cfg.Target)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("query_timeout", cfg.QueryTimeout)
	v.SetDefault("relationship_grouping", cfg.RelationshipGrouping)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("credentials_file", cfg.CredentialsFile)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.json", cfg.Log.JSON)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetEnvPrefix("DBSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".dbstats")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".dbstats"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical,
				"failed to read config")
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical,
			"failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.RelationshipGrouping {
	case GroupInDatabase, GroupLocally:
	default:
		return errors.ConfigErrorf("relationship_grouping must be %q or %q, got %q",
			GroupInDatabase, GroupLocally, c.RelationshipGrouping)
	}
	if c.QueryTimeout < 0 {
		return errors.ConfigErrorf("query_timeout must not be negative, got %s", c.QueryTimeout)
	}
	if c.Target != "" {
		if _, err := ParseTargetName(c.Target); err != nil {
			return err
		}
	}
	return nil
}

// loadEnvFiles loads .env files in order of precedence. godotenv never
// overrides a variable that is already set, so earlier files win.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".dbstats", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// Summary is a one-line description for debug logs
func (c *Config) Summary() string {
	return fmt.Sprintf("target=%q database=%q timeout=%s grouping=%s output=%s",
		c.Target, c.Database, c.QueryTimeout, c.RelationshipGrouping, c.Output)
}
