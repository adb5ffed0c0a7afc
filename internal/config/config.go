package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// VertiportRemovalPolicy controls what happens when a vertiport with
// linked vertipads is removed.
type VertiportRemovalPolicy string

const (
	// RemovalReject refuses removal while any vertipad still references
	// the vertiport.
	RemovalReject VertiportRemovalPolicy = "reject"
	// RemovalDetach clears the parent reference on linked vertipads and
	// then removes the vertiport.
	RemovalDetach VertiportRemovalPolicy = "detach"
)

// Config holds all configuration for the registry service.
type Config struct {
	AppEnv     string
	ListenAddr string
	DatabaseURL string

	// Backend picks the storage adapter: "sqlx" or "gorm".
	Backend string

	AuthSecret string

	RedisAddr     string
	RedisPassword string

	VertiportRemoval VertiportRemovalPolicy
}

// Load reads configuration from an optional yaml file and the
// REGISTRY_* environment variables. Env vars win over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("backend", "sqlx")
	v.SetDefault("vertiport_removal", string(RemovalReject))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/skyfleet-registry")
	v.AddConfigPath(".")

	if configPath := os.Getenv("REGISTRY_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults plus env vars carry us.
	}

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:           v.GetString("app_env"),
		ListenAddr:       v.GetString("listen_addr"),
		DatabaseURL:      v.GetString("database_url"),
		Backend:          v.GetString("backend"),
		AuthSecret:       v.GetString("auth_secret"),
		RedisAddr:        v.GetString("redis_addr"),
		RedisPassword:    v.GetString("redis_password"),
		VertiportRemoval: VertiportRemovalPolicy(v.GetString("vertiport_removal")),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if cfg.AuthSecret == "" {
		return fmt.Errorf("auth_secret is required")
	}
	switch cfg.Backend {
	case "sqlx", "gorm":
	default:
		return fmt.Errorf("invalid backend: %s (must be sqlx or gorm)", cfg.Backend)
	}
	switch cfg.VertiportRemoval {
	case RemovalReject, RemovalDetach:
	default:
		return fmt.Errorf("invalid vertiport_removal: %s (must be reject or detach)", cfg.VertiportRemoval)
	}
	return nil
}
