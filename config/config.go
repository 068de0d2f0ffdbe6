package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds every runtime setting, read from the process environment
// (optionally seeded from a .env file). Keys are the lowercased env names.
type Config struct {
	Port                   string `koanf:"port" validate:"required,numeric"`
	ReadTimeoutSeconds     int    `koanf:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `koanf:"write_timeout_seconds" validate:"gt=0"`
	IdleTimeoutSeconds     int    `koanf:"idle_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `koanf:"shutdown_timeout_seconds" validate:"gt=0"`
	AcceptedOrigins        string `koanf:"accepted_origins"`
	MaxBodyBytes           int64  `koanf:"max_body_bytes" validate:"gt=0"`

	DBType              string `koanf:"db_type" validate:"oneof=url supa"`
	DatabaseURL         string `koanf:"database_url" validate:"required_if=DBType url"`
	SupabaseDBHost      string `koanf:"supabase_db_host" validate:"required_if=DBType supa"`
	SupabaseDBUser      string `koanf:"supabase_db_user" validate:"required_if=DBType supa"`
	SupabaseDBPassword  string `koanf:"supabase_db_password"`
	SupabaseDBName      string `koanf:"supabase_db_name" validate:"required_if=DBType supa"`
	SupabaseDBPort      string `koanf:"supabase_db_port"`
	DatabaseReplicaURLs string `koanf:"database_replica_urls"`
	DBMaxOpenConns      int    `koanf:"db_max_open_conns" validate:"gt=0"`
	DBMaxIdleConns      int    `koanf:"db_max_idle_conns" validate:"gte=0"`
	ApplySchema         bool   `koanf:"apply_schema"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	GenerateModels       bool `koanf:"generate_models"`
	GenerateColumnReport bool `koanf:"generate_column_report"`
}

// Default returns the settings used for any key the environment leaves unset.
func Default() Config {
	return Config{
		Port:                   "8080",
		ReadTimeoutSeconds:     180,
		WriteTimeoutSeconds:    180,
		IdleTimeoutSeconds:     180,
		ShutdownTimeoutSeconds: 30,
		MaxBodyBytes:           1 << 20,
		DBType:                 "url",
		SupabaseDBPort:         "5432",
		DBMaxOpenConns:         25,
		DBMaxIdleConns:         5,
		ApplySchema:            true,
		LogLevel:               "info",
		LogFormat:              "console",
	}
}

// Load reads .env (when present) into the environment, then builds and
// validates the Config. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DSN returns the primary connection string for the configured DB_TYPE.
func (c Config) DSN() string {
	if c.DBType == "supa" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			c.SupabaseDBHost,
			c.SupabaseDBUser,
			c.SupabaseDBPassword,
			c.SupabaseDBName,
			c.SupabaseDBPort,
		)
	}
	return c.DatabaseURL
}

func (c Config) ReplicaDSNs() []string {
	return splitList(c.DatabaseReplicaURLs)
}

func (c Config) Origins() []string {
	return splitList(c.AcceptedOrigins)
}

func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// splitList splits a comma separated value, trimming blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
