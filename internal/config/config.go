package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	Log      LogConfig
	HTTP     HTTPConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Tasks    TasksConfig
	Products ProductsConfig
	Contact  ContactConfig
}

type LogConfig struct {
	// Level overrides the env-dependent default when set.
	Level string `env:"LOG_LEVEL"`
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type StorageConfig struct {
	// Driver is one of memory, file, postgres, redis or sqlite.
	Driver     string `env:"STORAGE_DRIVER" env-default:"file"`
	DataDir    string `env:"STORAGE_DATA_DIR" env-default:"./data"`
	SQLitePath string `env:"STORAGE_SQLITE_PATH" env-default:"./data/portfolio.db"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB" env-default:"0"`
	KeyPrefix   string        `env:"REDIS_KEY_PREFIX" env-default:"portfolio:"`
	PingTimeout time.Duration `env:"REDIS_PING_TIMEOUT" env-default:"5s"`
}

type TasksConfig struct {
	StorageKey string `env:"TASKS_STORAGE_KEY" env-default:"my_todos_v2"`
}

type ProductsConfig struct {
	SourceURL    string        `env:"PRODUCTS_SOURCE_URL"`
	FetchTimeout time.Duration `env:"PRODUCTS_FETCH_TIMEOUT" env-default:"10s"`
}

type ContactConfig struct {
	Endpoint  string        `env:"CONTACT_ENDPOINT"`
	Timeout   time.Duration `env:"CONTACT_TIMEOUT" env-default:"10s"`
	RateLimit float64       `env:"CONTACT_RATE_LIMIT" env-default:"0.2"`
	RateBurst int           `env:"CONTACT_RATE_BURST" env-default:"3"`
}
