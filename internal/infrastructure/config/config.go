package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost" validate:"required_if=Enabled true"`
	User     string `env:"DB_USER" envDefault:"rating"`
	Password string `env:"DB_PASSWORD" validate:"required_if=Enabled true"`
	Name     string `env:"DB_NAME" envDefault:"rmbs_pools"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"require" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	Port     int    `env:"DB_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	Enabled  bool   `env:"DB_ENABLED" envDefault:"false"`
}

type KafkaConfig struct {
	Brokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	ConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"credit-rating-service"`
	RequestTopic  string   `env:"KAFKA_REQUEST_TOPIC" envDefault:"rating-requests"`
	EventsTopic   string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"rating-events"`
	SASLMechanism string   `env:"KAFKA_SASL_MECHANISM" validate:"omitempty,oneof=PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
	SASLUsername  string   `env:"KAFKA_SASL_USERNAME" validate:"required_with=SASLMechanism"`
	SASLPassword  string   `env:"KAFKA_SASL_PASSWORD" validate:"required_with=SASLMechanism"`
	Enabled       bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	TLS           bool     `env:"KAFKA_TLS" envDefault:"false"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

type AuthConfig struct {
	Secret        string `env:"JWT_SECRET"`
	PublicKeyPEM  string `env:"JWT_PUBLIC_KEY"`
	PublicKeyFile string `env:"JWT_PUBLIC_KEY_FILE"`
	Issuer        string `env:"JWT_ISSUER" envDefault:"rmbs-auth"`
}

type TLSConfig struct {
	CertFile string `env:"GRPC_TLS_CERT_FILE" validate:"required_with=KeyFile"`
	KeyFile  string `env:"GRPC_TLS_KEY_FILE" validate:"required_with=CertFile"`
}

// Enabled reports whether both certificate and key are configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

type Config struct {
	ServiceName  string `env:"SERVICE_NAME" envDefault:"credit-rating-service" validate:"required"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	Log          LogConfig
	Auth         AuthConfig
	TLS          TLSConfig
	Kafka        KafkaConfig
	DB           DatabaseConfig
	GRPCPort     int  `env:"GRPC_PORT" envDefault:"9095" validate:"min=1,max=65535"`
	HTTPPort     int  `env:"HTTP_PORT" envDefault:"8095" validate:"min=1,max=65535"`
	Reflection   bool `env:"GRPC_REFLECTION" envDefault:"false"`
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory when one exists, and validates it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
