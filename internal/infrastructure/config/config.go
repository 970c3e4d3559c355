package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	JWTSecret      string        `env:"JWT_SECRET,      required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=24h"`
	HashIterations int           `env:"HASH_ITERATIONS, default=350000"`
	AuditWorkers   int           `env:"AUDIT_WORKERS,   default=4"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Admin    AdminConfig
}

type PostgresConfig struct {
	Host            string        `env:"POSTGRES_HOST,              default=localhost"`
	Port            int           `env:"POSTGRES_PORT,              default=5432"`
	User            string        `env:"POSTGRES_USER,              default=postgres"`
	Password        string        `env:"POSTGRES_PASSWORD,          default=postgres"`
	Database        string        `env:"POSTGRES_DB,                default=rushhour"`
	SSLMode         string        `env:"POSTGRES_SSLMODE,           default=disable"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS,    default=20"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME, default=30m"`
}

// DSN renders the libpq connection string. The session time zone is UTC.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI,             default=mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB,              default=rushhour"`
	AppName        string        `env:"MONGO_APP_NAME,        default=rushhour-api"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,         default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,           default=0"`
	PoolSize       int           `env:"REDIS_POOL_SIZE,    default=10"`
	DialTimeout    time.Duration `env:"REDIS_DIAL_TIMEOUT, default=5s"`
	BookingLockTTL time.Duration `env:"BOOKING_LOCK_TTL,   default=10s"`
}

// AdminConfig seeds the bootstrap administrator when Email is set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context, files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}
