package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/route2rise/leaddesk/internal/core/ports"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWT_SECRET has no default on purpose: starting without a signing
	// secret is a configuration error.
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,  default=24h"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=http://localhost:5173"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Founders FoundersConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=route2rise"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// FoundersConfig holds the two static principals. Exactly two founders
// exist; there is no user table.
type FoundersConfig struct {
	AUsername string `env:"FOUNDER_A_USERNAME, default=founder_a"`
	APassword string `env:"FOUNDER_A_PASSWORD, default=password_a"`
	AName     string `env:"FOUNDER_A_NAME,     default=Founder A"`
	BUsername string `env:"FOUNDER_B_USERNAME, default=founder_b"`
	BPassword string `env:"FOUNDER_B_PASSWORD, default=password_b"`
	BName     string `env:"FOUNDER_B_NAME,     default=Founder B"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// FounderCredentials returns the two configured principals in the shape the
// credential store consumes.
func (c *Config) FounderCredentials() []ports.FounderCredential {
	return []ports.FounderCredential{
		{Username: c.Founders.AUsername, Password: c.Founders.APassword, Name: c.Founders.AName},
		{Username: c.Founders.BUsername, Password: c.Founders.BPassword, Name: c.Founders.BName},
	}
}
