package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets), security settings
// - default: Values common across all environments (timeouts, pool sizes), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	Lock    LockConfig
	Webhook WebhookConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

type StoreConfig struct {
	Backend string `envconfig:"STORE_BACKEND" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	// Migrate applies the embedded schema on startup.
	Migrate bool `envconfig:"DB_MIGRATE" default:"false"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

type LockConfig struct {
	Backend    string        `envconfig:"LOCK_BACKEND" default:"local"`
	TTL        time.Duration `envconfig:"LOCK_TTL" default:"10s"`
	RetryDelay time.Duration `envconfig:"LOCK_RETRY_DELAY" default:"25ms"`
}

// An empty URL or Secret is a valid configuration: deliveries are then recorded
// as configuration failures instead of being attempted.
type WebhookConfig struct {
	URL           string        `envconfig:"WEBHOOK_URL"`
	Secret        string        `envconfig:"WEBHOOK_SECRET"`
	Timeout       time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"10s"`
	Workers       int           `envconfig:"WEBHOOK_WORKERS" default:"4"`
	QueueSize     int           `envconfig:"WEBHOOK_QUEUE_SIZE" default:"256"`
	MaxAttempts   int           `envconfig:"WEBHOOK_MAX_ATTEMPTS" default:"5"`
	RetryBase     time.Duration `envconfig:"WEBHOOK_RETRY_BASE" default:"30s"`
	SweepInterval time.Duration `envconfig:"WEBHOOK_SWEEP_INTERVAL" default:"1m"`
	SweepBatch    int           `envconfig:"WEBHOOK_SWEEP_BATCH" default:"50"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret              string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the %q store backend", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Lock.Backend {
	case LockBackendLocal, LockBackendRedis:
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Backend: StoreBackendMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Lock: LockConfig{
			Backend:    LockBackendLocal,
			TTL:        5 * time.Second,
			RetryDelay: 5 * time.Millisecond,
		},
		Webhook: WebhookConfig{
			Timeout:       2 * time.Second,
			Workers:       1,
			QueueSize:     16,
			MaxAttempts:   3,
			RetryBase:     time.Second,
			SweepInterval: time.Minute,
			SweepBatch:    10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:              "test-secret",
			AccessTokenDuration: 15 * time.Minute,
		},
	}
}
