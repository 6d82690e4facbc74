package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "change-me"

type Config struct {
	Addr       string           `yaml:"addr"`
	AppEnv     string           `yaml:"app_env"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Cache      CacheConfig      `yaml:"cache"`
	Onboarding OnboardingConfig `yaml:"onboarding"`
	Progress   ProgressConfig   `yaml:"progress"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the postgres connection URL used by both sqlx and GORM.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type CacheConfig struct {
	RolesTTL        time.Duration `yaml:"roles_ttl"`
	DefaultTTL      time.Duration `yaml:"default_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

type OnboardingConfig struct {
	// ProfileCompletionApproves forces status=approved when a profile is completed.
	ProfileCompletionApproves bool `yaml:"profile_completion_approves"`
}

type ProgressConfig struct {
	PollInterval    time.Duration `yaml:"poll_interval"`
	MonitorInterval time.Duration `yaml:"monitor_interval"`
}

type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// Default returns the configuration used when no file or env overrides are given.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		AppEnv: "development",
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "mentorhub",
			DBName:  "mentorhub",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Auth: AuthConfig{
			JWTSecret:  insecureJWTSecret,
			TokenTTL:   24 * time.Hour,
			SessionTTL: 7 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			RolesTTL:        time.Minute,
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Onboarding: OnboardingConfig{
			ProfileCompletionApproves: true,
		},
		Progress: ProgressConfig{
			PollInterval:    30 * time.Second,
			MonitorInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			PerSecond: 1,
			Burst:     5,
		},
	}
}

// LoadConfig reads the optional YAML file at path and then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("MENTORHUB_ADDR", c.Addr)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)

	c.Postgres.Host = getEnv("PG_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnv("PG_PORT", c.Postgres.Port)
	c.Postgres.User = getEnv("PG_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("PG_PASSWORD", c.Postgres.Password)
	c.Postgres.DBName = getEnv("PG_DB", c.Postgres.DBName)

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = b
		}
	}

	c.Auth.JWTSecret = getEnv("MENTORHUB_JWT_SECRET", c.Auth.JWTSecret)
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.JWTSecret == insecureJWTSecret && c.AppEnv != "development" {
		return fmt.Errorf("auth.jwt_secret must be changed outside development (env=%s)", c.AppEnv)
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.SessionTTL <= 0 {
		return errors.New("auth.token_ttl and auth.session_ttl must be positive")
	}
	if c.Progress.PollInterval <= 0 {
		c.Progress.PollInterval = 30 * time.Second
	}
	if c.Progress.MonitorInterval <= 0 {
		c.Progress.MonitorInterval = time.Minute
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.per_second and rate_limit.burst must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
