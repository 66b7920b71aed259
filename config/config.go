package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"collably"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"false"`

	// Collably API base URL
	APIBaseURL string `env:"API_BASE_URL" env-default:"https://collably.in/api"`
	// Outbound request timeout
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" env-default:"30s"`
	// Max idle keep-alive connections
	HTTPClientMaxIdleConns int `env:"HTTP_CLIENT_MAX_IDLE_CONNS" env-default:"100"`
	// Idle keep-alive connection timeout
	HTTPClientIdleConnTimeout time.Duration `env:"HTTP_CLIENT_IDLE_CONN_TIMEOUT" env-default:"90s"`

	// Session backend (file, memory or redis)
	SessionBackend string `env:"SESSION_BACKEND" env-default:"file"`
	// Session file path, defaults to ~/.collably/session.yaml
	SessionFile string `env:"SESSION_FILE" env-default:""`
	// Key prefix for the redis session hash
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX" env-default:"collably:session"`

	// Redis host
	RedisHost string `env:"REDIS_HOST" env-default:"localhost"`
	// Redis port
	RedisPort int `env:"REDIS_PORT" env-default:"6379"`
	// Redis password
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	// Redis database number
	RedisDB int `env:"REDIS_DB" env-default:"0"`

	// Kafka brokers (comma-separated), empty disables the action stream
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:""`
	// Kafka topic for settled store actions
	KafkaActionsTopic string `env:"KAFKA_ACTIONS_TOPIC" env-default:"collably-actions"`

	// Enable OTLP tracing export
	OTLPEnabled bool `env:"OTLP_ENABLED" env-default:"false"`
	// OTLP collector endpoint
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
	// OTLP protocol (grpc or http)
	OTLPProtocol string `env:"OTLP_PROTOCOL" env-default:"grpc"`
	// Disable TLS for OTLP (for local development)
	OTLPInsecure bool `env:"OTLP_INSECURE" env-default:"true"`

	// Address for the Prometheus /metrics listener, empty disables it
	MetricsAddr string `env:"METRICS_ADDR" env-default:""`

	// Password given to brands created by spreadsheet import
	ImportDefaultBrandPassword string `env:"IMPORT_DEFAULT_BRAND_PASSWORD" env-default:"Collably@123"`
	// Rows per page for list output
	PageSize int `env:"PAGE_SIZE" env-default:"10"`

	StartupMaxAttempts int `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Port for the local fake API
	TwinPort int `env:"TWIN_PORT" env-default:"4010"`
}

// Load reads the optional dotenv files and binds the environment onto a Config.
// Missing dotenv files are ignored; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return cfg, nil
}
