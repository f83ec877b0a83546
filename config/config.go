package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Ledger   LedgerConfig
}

type ServerConfig struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	HTTPPort string `env:"HTTP_PORT" envDefault:":8080"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
}

type PostgresConfig struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"luxhub"`
	Password        string `env:"POSTGRES_PASSWORD" envDefault:"luxhub"`
	DBName          string `env:"POSTGRES_DB" envDefault:"luxhub_projects"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int    `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"300"`
	ConnMaxIdleTime int    `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"KAFKA_TOPIC_ORDERS" envDefault:"orders.events"`
	GroupID string   `env:"KAFKA_GROUP_LEDGER" envDefault:"project-ledger"`
}

type ElasticsearchConfig struct {
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" envSeparator:"," envDefault:"http://localhost:9200"`
	Username  string   `env:"ELASTICSEARCH_USERNAME" envDefault:""`
	Password  string   `env:"ELASTICSEARCH_PASSWORD" envDefault:""`
}

// LedgerConfig bounds the ledger store's mutations and external calls.
type LedgerConfig struct {
	MaxQuantity     int           `env:"LEDGER_MAX_QUANTITY" envDefault:"99"`
	ResolveTimeout  time.Duration `env:"LEDGER_RESOLVE_TIMEOUT" envDefault:"3s"`
	HistoryTimeout  time.Duration `env:"LEDGER_HISTORY_TIMEOUT" envDefault:"5s"`
	HistoryCacheTTL time.Duration `env:"LEDGER_HISTORY_CACHE_TTL" envDefault:"30s"`
	ProductCacheTTL time.Duration `env:"LEDGER_PRODUCT_CACHE_TTL" envDefault:"5m"`
}

func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
