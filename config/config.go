package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerURL         string
	AccessToken       string
	PollIntervalSec   int
	RequestTimeoutSec int
	LogLevel          string
}

// PollInterval returns the conversation poll period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// RequestTimeout bounds each HTTP request so a hung fetch cannot block
// the next poll tick indefinitely.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "getset-tui")
}

func setup() {
	viper.SetConfigName("getset")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("GETSET")
	viper.AutomaticEnv()
	viper.BindEnv("server_url", "GETSET_SERVER_URL")
	viper.BindEnv("access_token", "GETSET_ACCESS_TOKEN")

	viper.SetDefault("poll_interval_sec", 15)
	viper.SetDefault("request_timeout_sec", 15)
	viper.SetDefault("log_level", "info")
}

func Load() (*Config, error) {
	setup()

	// Config file is optional
	_ = viper.ReadInConfig()

	cfg := &Config{
		ServerURL:         viper.GetString("server_url"),
		AccessToken:       viper.GetString("access_token"),
		PollIntervalSec:   viper.GetInt("poll_interval_sec"),
		RequestTimeoutSec: viper.GetInt("request_timeout_sec"),
		LogLevel:          viper.GetString("log_level"),
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("GETSET_SERVER_URL is required (or server_url in %s/getset.yaml)", configDir())
	}

	return cfg, nil
}

// SaveToken persists the access token returned by login so later runs
// pick it up without re-authenticating.
func SaveToken(token string) error {
	setup()
	_ = viper.ReadInConfig()
	viper.Set("access_token", token)

	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	// No config file yet: create one under the config dir.
	if err := os.MkdirAll(configDir(), 0o755); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(configDir(), "getset.yaml"))
}
