package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cashroute/cashroute/internal/domain/service"
)

// Config holds all service configuration loaded from environment variables,
// with the routing tunables optionally overridden by a YAML file.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	DB        DBConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Routing   RoutingConfig
	Jobs      JobsConfig
	LogLevel  string
	LogFormat string

	// RateLimitRPS bounds requests per second on the REST surface.
	RateLimitRPS int
}

type DBConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int32
	MinConns      int32
	MigrationsDir string
}

type KafkaConfig struct {
	Brokers                []string
	AllowAutoTopicCreation bool
}

type AuthConfig struct {
	JWTSecret    string
	JWTPublicKey string // PEM; takes precedence over the secret when set
	Issuer       string

	// TLS for the gRPC listener; plaintext when unset.
	TLSCertFile string
	TLSKeyFile  string
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
}

// RoutingConfig carries the combination-search tunables.
type RoutingConfig struct {
	MaxAccountsPerCombination int `yaml:"maxAccountsPerCombination"`
	MaxCombinations           int `yaml:"maxCombinations"`
	MaxEligibleAccounts       int `yaml:"maxEligibleAccounts"`
}

// CombinationConfig maps the tunables onto the domain's search bounds.
func (r RoutingConfig) CombinationConfig() service.CombinationConfig {
	return service.CombinationConfig{
		MaxAccountsPerCombination: r.MaxAccountsPerCombination,
		MaxCombinations:           r.MaxCombinations,
		MaxEligibleAccounts:       r.MaxEligibleAccounts,
	}
}

type JobsConfig struct {
	RetentionDays   int
	RetentionCron   string
	OutboxInterval  time.Duration
	OutboxBatchSize int
}

// Validate checks required configuration values.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("config: DB_PASSWORD is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		return fmt.Errorf("config: JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	if c.Jobs.RetentionDays <= 0 {
		return fmt.Errorf("config: RETENTION_DAYS must be positive, got %d", c.Jobs.RetentionDays)
	}
	if c.Jobs.OutboxInterval <= 0 {
		return fmt.Errorf("config: OUTBOX_INTERVAL must be positive, got %s", c.Jobs.OutboxInterval)
	}
	return nil
}

// Load reads configuration from environment variables with defaults. A .env
// file in the working directory is folded in first when present; a YAML file
// named by ROUTING_CONFIG_FILE overrides the routing tunables last.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "cashroute"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "cashroute_routing"),
			SSLMode:       getEnv("DB_SSLMODE", "require"),
			MaxConns:      int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns:      int32(getEnvInt("DB_MIN_CONNS", 5)),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "file://./migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:                strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			AllowAutoTopicCreation: getEnvBool("KAFKA_AUTO_CREATE_TOPICS", false),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTPublicKey: getEnv("JWT_PUBLIC_KEY", ""),
			Issuer:       getEnv("JWT_ISSUER", "cashroute"),
			TLSCertFile:  getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  "routing-service",
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
		Routing: RoutingConfig{
			MaxAccountsPerCombination: getEnvInt("ROUTING_MAX_ACCOUNTS_PER_COMBINATION", service.DefaultMaxAccountsPerCombination),
			MaxCombinations:           getEnvInt("ROUTING_MAX_COMBINATIONS", 0),
			MaxEligibleAccounts:       getEnvInt("ROUTING_MAX_ELIGIBLE_ACCOUNTS", service.DefaultMaxEligibleAccounts),
		},
		Jobs: JobsConfig{
			RetentionDays:   getEnvInt("RETENTION_DAYS", 90),
			RetentionCron:   getEnv("RETENTION_CRON", "0 3 * * *"),
			OutboxInterval:  getEnvDuration("OUTBOX_INTERVAL", 30*time.Second),
			OutboxBatchSize: getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 50),
	}

	if file := os.Getenv("ROUTING_CONFIG_FILE"); file != "" {
		if err := loadRoutingFile(file, &cfg.Routing); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// loadRoutingFile overrides the routing tunables from a YAML file. Only keys
// present in the file change; zero values in the file keep the env defaults.
func loadRoutingFile(path string, routing *RoutingConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read routing file %s: %w", path, err)
	}

	var override RoutingConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("config: parse routing file %s: %w", path, err)
	}

	if override.MaxAccountsPerCombination > 0 {
		routing.MaxAccountsPerCombination = override.MaxAccountsPerCombination
	}
	if override.MaxCombinations > 0 {
		routing.MaxCombinations = override.MaxCombinations
	}
	if override.MaxEligibleAccounts > 0 {
		routing.MaxEligibleAccounts = override.MaxEligibleAccounts
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
