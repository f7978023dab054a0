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

// RedisConfig holds the checkpoint store configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	Enabled        bool          `mapstructure:"enabled"`
}

// HubConfig holds the hub connection configuration
type HubConfig struct {
	// Endpoint is the host:port of the hub grpc service
	Endpoint string `mapstructure:"endpoint"`
	// HubID names the hub for checkpoint keys
	HubID string `mapstructure:"hub_id"`
	// Insecure disables TLS on the hub connection
	Insecure bool `mapstructure:"insecure"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// ShuttleConfig holds configuration for the streaming shuttle service
type ShuttleConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Hub        HubConfig      `mapstructure:"hub"`
}

// ReconcilerConfig holds configuration for the out-of-band reconciler
type ReconcilerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Hub        HubConfig      `mapstructure:"hub"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	// Fids is the explicit fid list to reconcile; when empty, FidStart..FidEnd is used
	Fids     []uint64 `mapstructure:"fids"`
	FidStart uint64   `mapstructure:"fid_start"`
	FidEnd   uint64   `mapstructure:"fid_end"`
}

// Fidset resolves the configured fid list
func (c *ReconcilerConfig) Fidset() []uint64 {
	if len(c.Fids) > 0 {
		return c.Fids
	}
	if c.FidEnd == 0 || c.FidEnd < c.FidStart {
		return nil
	}
	fids := make([]uint64, 0, c.FidEnd-c.FidStart+1)
	for fid := c.FidStart; fid <= c.FidEnd; fid++ {
		fids = append(fids, fid)
	}
	return fids
}

// LoadShuttleConfig loads configuration for the shuttle service
func LoadShuttleConfig(configFile string, envPath string) (*ShuttleConfig, error) {
	v := configureViper("shuttle", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.subject_prefix", "hub_messages")
	v.SetDefault("nats.connection_name", "hub-shuttle")
	v.SetDefault("hub.hub_id", "default")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config ShuttleConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Hub.Endpoint == "" {
		return nil, errors.New("hub.endpoint is required")
	}
	if config.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if config.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &config, nil
}

// LoadReconcilerConfig loads configuration for the reconciler
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("hub.hub_id", "default")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config ReconcilerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Hub.Endpoint == "" {
		return nil, errors.New("hub.endpoint is required")
	}
	if len(config.Fidset()) == 0 {
		return nil, errors.New("fids or a fid_start/fid_end range is required")
	}

	return &config, nil
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
		// 2. Service-specific directory (e.g., cmd/shuttle/, cmd/reconciler/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SHUTTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
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
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// NATS
		"nats.url",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.enabled",
		// Hub
		"hub.endpoint",
		"hub.hub_id",
		"hub.insecure",
		// Reconciler
		"worker.pool_size",
		"fids",
		"fid_start",
		"fid_end",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
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
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
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

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
