package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for config discovery, replaceable in tests.
var AppFs = afero.NewOsFs()

// Config holds the application configuration.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	Debug          bool
}

// Load reads configuration from mongolift.yaml (working directory, home
// directory or ~/.config/mongolift), MONGOLIFT_-prefixed environment
// variables and an optional .env file. Missing config files are not an
// error; every setting has a default or can come from the environment.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("mongolift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "mongolift"))

	v.SetEnvPrefix("MONGOLIFT")
	v.AutomaticEnv()

	v.SetDefault("uri", "mongodb://localhost:27017")
	v.SetDefault("database", "test")
	v.SetDefault("connect_timeout", "10s")
	v.SetDefault("debug", false)

	// A missing config file is fine; environment and defaults cover it.
	_ = v.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		URI:            v.GetString("uri"),
		Database:       v.GetString("database"),
		ConnectTimeout: v.GetDuration("connect_timeout"),
		Debug:          v.GetBool("debug"),
	}

	return cfg, nil
}
