package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ninoxdb/ninox-go"
)

// AppFs is the filesystem used for config and .env files.
var AppFs = afero.NewOsFs()

// EnvPrefix prefixes every environment variable, e.g. NINOX_AUTH_KEY.
const EnvPrefix = "NINOX"

// Config keys.
const (
	KeyURI      = "uri"
	KeyVersion  = "version"
	KeyAuthKey  = "auth_key"
	KeyTeam     = "team"
	KeyDatabase = "database"
	KeyTable    = "table"
	KeyLogLevel = "log_level"
	KeyTimeout  = "timeout"
)

// Config holds the CLI configuration
type Config struct {
	URI      string
	Version  string
	AuthKey  string
	Team     string
	Database string
	Table    string
	LogLevel string
	Timeout  time.Duration
}

// AuthOptions returns the inputs for ninox.Client.Auth.
func (c *Config) AuthOptions() ninox.AuthOptions {
	return ninox.AuthOptions{
		URI:      c.URI,
		Version:  c.Version,
		AuthKey:  c.AuthKey,
		Team:     c.Team,
		Database: c.Database,
	}
}

// New returns a viper instance with defaults, env binding and search paths
// set up. Flags may be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)

	v.SetConfigName(".ninox")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "ninox"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyURI, ninox.DefaultBaseURL)
	v.SetDefault(KeyVersion, ninox.DefaultVersion)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyTimeout, 30*time.Second)
	return v
}

// Load loads configuration from various sources, highest priority first:
// bound flags, environment, .env.local, .env, config file, defaults.
// configFile, when set, must exist; otherwise a missing file is ignored.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := loadDotenv(".env", false); err != nil {
		return nil, err
	}
	// .env.local has higher priority
	if err := loadDotenv(".env.local", true); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	timeout := v.GetDuration(KeyTimeout)
	if timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative")
	}

	return &Config{
		URI:      v.GetString(KeyURI),
		Version:  v.GetString(KeyVersion),
		AuthKey:  v.GetString(KeyAuthKey),
		Team:     v.GetString(KeyTeam),
		Database: v.GetString(KeyDatabase),
		Table:    v.GetString(KeyTable),
		LogLevel: v.GetString(KeyLogLevel),
		Timeout:  timeout,
	}, nil
}

// loadDotenv exports the variables of a .env file. Existing variables win
// unless override is set. A missing file is not an error.
func loadDotenv(path string, override bool) error {
	f, err := AppFs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for k, val := range vars {
		if _, exists := os.LookupEnv(k); exists && !override {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
