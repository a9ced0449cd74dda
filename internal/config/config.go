package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret       string   `mapstructure:"JWT_SECRET"`
	JWTTTLHours     int      `mapstructure:"JWT_TTL_HOURS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	CompletionURL   string   `mapstructure:"COMPLETION_URL"`
	CompletionKey   string   `mapstructure:"COMPLETION_API_KEY"`
	CompletionModel string   `mapstructure:"COMPLETION_MODEL"`
	TriageTimeoutMS int      `mapstructure:"TRIAGE_TIMEOUT_MS"`
	TriageRulesFile string   `mapstructure:"TRIAGE_RULES_FILE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("JWT_TTL_HOURS", 12)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("COMPLETION_URL", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("COMPLETION_MODEL", "mistralai/mistral-7b-instruct")
	v.SetDefault("TRIAGE_TIMEOUT_MS", 8000)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_TTL_HOURS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("COMPLETION_URL")
	v.BindEnv("COMPLETION_API_KEY")
	v.BindEnv("COMPLETION_MODEL")
	v.BindEnv("TRIAGE_TIMEOUT_MS")
	v.BindEnv("TRIAGE_RULES_FILE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// TriageTimeout returns the bound on a single remote triage call.
func (c *Config) TriageTimeout() time.Duration {
	return time.Duration(c.TriageTimeoutMS) * time.Millisecond
}

// Validate checks that the configuration is safe to run. Outside development
// a real JWT secret is required; the completion API key is optional because
// the triage assistant degrades to its local fallback without it.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if c.TriageTimeoutMS <= 0 {
		return fmt.Errorf("TRIAGE_TIMEOUT_MS must be positive, got %d", c.TriageTimeoutMS)
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTLHours)
	}
	return nil
}
