package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ChdirRepoRoot walks up from the working directory until it finds the
// config directory, so relative config paths resolve regardless of where
// the binary was started from
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RegistryConfig holds the external parcel registry client configuration
type RegistryConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EscrowConfig holds the escrow chain backend configuration
type EscrowConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ContractAddress     string        `mapstructure:"contract_address"`
	ChainID             int64         `mapstructure:"chain_id"`
	OperatorPrivateKey  string        `mapstructure:"operator_private_key"` // hex-encoded ECDSA key
	CallTimeout         time.Duration `mapstructure:"call_timeout"`
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
}

// OperatorLedgerConfig holds the operator-ledger chain backend configuration
type OperatorLedgerConfig struct {
	TokenServiceURL string        `mapstructure:"token_service_url"`
	TreasuryAccount string        `mapstructure:"treasury_account"`
	CallTimeout     time.Duration `mapstructure:"call_timeout"`
}

// SettlementConfig holds settlement engine configuration
type SettlementConfig struct {
	// FeePercent is the platform fee applied to each purchase, as a decimal
	// fraction (e.g. "0.025" for 2.5%)
	FeePercent string `mapstructure:"fee_percent"`
}

// ReconcilerConfig holds reconciliation sweep configuration
type ReconcilerConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	BatchSize     int           `mapstructure:"batch_size"`
	Workers       int           `mapstructure:"workers"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Registry       RegistryConfig       `mapstructure:"registry"`
	Escrow         EscrowConfig         `mapstructure:"escrow"`
	OperatorLedger OperatorLedgerConfig `mapstructure:"operator_ledger"`
	Settlement     SettlementConfig     `mapstructure:"settlement"`
}

// ReconcilerServiceConfig holds configuration for the reconciler service
type ReconcilerServiceConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Escrow         EscrowConfig         `mapstructure:"escrow"`
	OperatorLedger OperatorLedgerConfig `mapstructure:"operator_ledger"`
	Reconciler     ReconcilerConfig     `mapstructure:"reconciler"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setChainDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("registry.timeout", "10s")
	v.SetDefault("settlement.fee_percent", "0.025")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Registry.URL == "" {
		return nil, errors.New("registry.url is required")
	}

	return &cfg, nil
}

// LoadReconcilerConfig loads configuration for the reconciler service
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerServiceConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setChainDefaults(v)
	v.SetDefault("reconciler.sweep_interval", "1m")
	v.SetDefault("reconciler.batch_size", 100)
	v.SetDefault("reconciler.workers", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ReconcilerServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "PARCEL_EVENTS")
}

func setChainDefaults(v *viper.Viper) {
	v.SetDefault("escrow.call_timeout", "2m")
	v.SetDefault("escrow.receipt_poll_interval", "2s")
	v.SetDefault("operator_ledger.call_timeout", "30s")
}

func validateDatabase(db *DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/reconciler/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("TOWNHALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// loadEnv loads environment files, later files overriding earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}

// bindAllEnvVars explicitly binds every known config key so AutomaticEnv
// resolves keys that never appear in a config file
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Parcel registry
		"registry.url",
		"registry.timeout",
		// Escrow backend
		"escrow.rpc_url",
		"escrow.contract_address",
		"escrow.chain_id",
		"escrow.operator_private_key",
		"escrow.call_timeout",
		"escrow.receipt_poll_interval",
		// Operator ledger backend
		"operator_ledger.token_service_url",
		"operator_ledger.treasury_account",
		"operator_ledger.call_timeout",
		// Settlement
		"settlement.fee_percent",
		// Reconciler
		"reconciler.sweep_interval",
		"reconciler.batch_size",
		"reconciler.workers",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
