package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store backends accepted by LedgerConfig.Store.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the KYC server configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Faucet     FaucetConfig     `yaml:"faucet"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"60s"`
}

// DatabaseConfig contains database settings. Only read when the ledger store is postgres.
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"kyc_ledger"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

// LedgerConfig contains account store and rent settings. The KYC program id is
// a deployment constant and is not configurable.
type LedgerConfig struct {
	Store string     `yaml:"store" default:"memory" validate:"oneof=memory postgres"`
	Rent  RentConfig `yaml:"rent"`
}

// RentConfig prices account storage
type RentConfig struct {
	LamportsPerByteYear uint64  `yaml:"lamports_per_byte_year" default:"3480" validate:"gt=0"`
	ExemptionThreshold  float64 `yaml:"exemption_threshold" default:"2" validate:"gt=0"`
}

// FaucetConfig controls the development airdrop endpoint
type FaucetConfig struct {
	Enabled     bool   `yaml:"enabled"`
	MaxLamports uint64 `yaml:"max_lamports" default:"10000000000" validate:"required_if=Enabled true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MonitoringConfig contains metrics settings
type MonitoringConfig struct {
	Enabled     bool   `yaml:"enabled" default:"true"`
	MetricsPath string `yaml:"metrics_path" default:"/metrics" validate:"startswith=/"`
}

// Load reads a YAML config file over the defaults, expanding ${VAR} references
// from the environment, and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config content. See Load.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	// Defaults go in first so explicit zero values in the file still win.
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if cfg.Ledger.Store == StorePostgres && cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required for the postgres store")
	}
	return nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Address returns the host:port the HTTP server listens on
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
