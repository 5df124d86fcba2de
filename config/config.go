package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Redis         RedisConfig         `yaml:"redis"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Superuser     SuperuserConfig     `yaml:"superuser"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Queue         QueueConfig         `yaml:"queue"`
	Observability ObservabilityConfig `yaml:"observability"`
	Discord       DiscordConfig       `yaml:"discord"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig holds Redis configuration. An empty URL disables caching.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// NATSConfig holds NATS configuration. An empty URL selects the in-process
// event bus.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	APIPrefix      string   `yaml:"api_prefix"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	FrontendHost   string   `yaml:"frontend_host"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	AccessTTL time.Duration `yaml:"access_ttl"`
	ResetTTL  time.Duration `yaml:"reset_ttl"`
}

// SuperuserConfig is the account created on first start.
type SuperuserConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// ScoringConfig holds points allocation settings.
type ScoringConfig struct {
	MaxPoints float64 `yaml:"max_points"`
}

// QueueConfig controls the background import queue.
type QueueConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// DiscordConfig holds the Discord bot settings.
type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
	APIURL        string `yaml:"api_url"`
}

// IsDevelopment reports whether the environment is local development.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Observability.Environment)
	return env == "" || env == "local" || env == "development"
}

// LoadConfig loads the configuration from a YAML file, then applies a .env
// file and environment variables on top. A missing YAML file is not an error.
func LoadConfig(filename string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var cfg Config
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.HTTP.Addr, "HTTP_ADDR")
	setString(&cfg.HTTP.APIPrefix, "API_V1_STR")
	setString(&cfg.HTTP.FrontendHost, "FRONTEND_HOST")
	if v := os.Getenv("BACKEND_CORS_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setString(&cfg.JWT.Secret, "SECRET_KEY")
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES value: %q", v)
		}
		cfg.JWT.AccessTTL = time.Duration(n) * time.Minute
	}
	if v := os.Getenv("EMAIL_RESET_TOKEN_EXPIRE_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid EMAIL_RESET_TOKEN_EXPIRE_HOURS value: %q", v)
		}
		cfg.JWT.ResetTTL = time.Duration(n) * time.Hour
	}
	setString(&cfg.Superuser.Email, "FIRST_SUPERUSER")
	setString(&cfg.Superuser.Password, "FIRST_SUPERUSER_PASSWORD")
	if v := os.Getenv("MAX_POINTS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid MAX_POINTS value: %q", v)
		}
		cfg.Scoring.MaxPoints = f
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = v == "true"
	}
	setString(&cfg.Observability.MetricsAddress, "METRICS_ADDRESS")
	setString(&cfg.Observability.Environment, "ENVIRONMENT")
	setString(&cfg.Observability.LogLevel, "LOG_LEVEL")
	setString(&cfg.Discord.Token, "DISCORD_TOKEN")
	setString(&cfg.Discord.ApplicationID, "DISCORD_APPLICATION_ID")
	setString(&cfg.Discord.GuildID, "DISCORD_GUILD_ID")
	setString(&cfg.Discord.APIURL, "DISCORD_API_URL")
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8000"
	}
	if cfg.HTTP.APIPrefix == "" {
		cfg.HTTP.APIPrefix = "/api/v1"
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 20
	}
	if cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = 40
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 8 * 24 * time.Hour
	}
	if cfg.JWT.ResetTTL == 0 {
		cfg.JWT.ResetTTL = 48 * time.Hour
	}
	if cfg.Scoring.MaxPoints == 0 {
		cfg.Scoring.MaxPoints = 30
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Discord.APIURL == "" {
		cfg.Discord.APIURL = "http://localhost:8000/api/v1"
	}
}

// ValidateAPI checks what the API server cannot start without.
func (c *Config) ValidateAPI() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("SECRET_KEY is not set"))
	} else if c.JWT.Secret == "changethis" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SECRET_KEY must be changed outside development"))
	}
	if c.Superuser.Email != "" && c.Superuser.Password == "changethis" && !c.IsDevelopment() {
		errs = append(errs, errors.New("FIRST_SUPERUSER_PASSWORD must be changed outside development"))
	}
	return errors.Join(errs...)
}

// ValidateDiscord checks the settings the Discord bot cannot start without.
func (c *Config) ValidateDiscord() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is not set"))
	}
	if c.Discord.APIURL == "" {
		errs = append(errs, errors.New("DISCORD_API_URL is not set"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
