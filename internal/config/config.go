package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Post deletion rules. DeleteRuleAdminAndOwner is the legacy behaviour where
// the acting user had to be both an admin and the author.
const (
	DeleteRuleOwnerOrAdmin  = "owner_or_admin"
	DeleteRuleAdminAndOwner = "admin_and_owner"
)

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	SQLite struct {
		Path string `json:"path"`
	} `json:"sqlite"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Auth struct {
		PrivateKeyPath string `json:"private_key_path"`
		PublicKeyPath  string `json:"public_key_path"`
		TokenTTLHours  int    `json:"token_ttl_hours"`
		PresenceMins   int    `json:"presence_minutes"`
	} `json:"auth"`
	Posts struct {
		DeleteRule string `json:"delete_rule"`
	} `json:"posts"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads the JSON config from disk (singleton). Values from a .env
// file or the environment take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load() // .env is optional
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		applyEnv(&c)
		applyDefaults(&c)
		if err := c.Validate(); err != nil {
			cfgErr = err
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.PrivateKeyPath == "" || c.Auth.PublicKeyPath == "" {
		return errors.New("auth.private_key_path and auth.public_key_path must be set in config")
	}
	if c.Postgres.DSN == "" && c.SQLite.Path == "" {
		return errors.New("one of postgres.dsn or sqlite.path must be set in config")
	}
	switch c.Posts.DeleteRule {
	case DeleteRuleOwnerOrAdmin, DeleteRuleAdminAndOwner:
	default:
		return fmt.Errorf("unknown posts.delete_rule %q", c.Posts.DeleteRule)
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Subpath == "" {
		c.Server.Subpath = "/api/v1"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Auth.PresenceMins == 0 {
		c.Auth.PresenceMins = 30
	}
	if c.Posts.DeleteRule == "" {
		c.Posts.DeleteRule = DeleteRuleOwnerOrAdmin
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("BLOG_POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("BLOG_SQLITE_PATH"); v != "" {
		c.SQLite.Path = v
	}
	if v := os.Getenv("BLOG_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("BLOG_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("BLOG_PRIVATE_KEY_PATH"); v != "" {
		c.Auth.PrivateKeyPath = v
	}
	if v := os.Getenv("BLOG_PUBLIC_KEY_PATH"); v != "" {
		c.Auth.PublicKeyPath = v
	}
}
