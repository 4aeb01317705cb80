package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds all runtime settings for the API server.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	MongoURI      string        `env:"MONGO_URI"      envDefault:"mongodb://127.0.0.1:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"minicommerce"`
	MongoTimeout  time.Duration `env:"MONGO_TIMEOUT"  envDefault:"5s"`

	Token Token

	SMTP SMTP

	RateLimit RateLimit

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	ResetCodeExpiresIn time.Duration `env:"RESET_CODE_EXPIRES_IN" envDefault:"15m"`
}

// Token holds JWT signing settings.
type Token struct {
	Secret    string        `env:"TOKEN_SECRET"`
	Issuer    string        `env:"TOKEN_ISSUER"     envDefault:"mini-commerce-api"`
	ExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"24h"`
}

// SMTP holds outbound mail settings.
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// RateLimit holds the fixed-window request caps per caller class.
type RateLimit struct {
	Window      time.Duration `env:"RATE_LIMIT_WINDOW"        envDefault:"15m"`
	AuthLimit   int           `env:"RATE_LIMIT_AUTHENTICATED" envDefault:"100"`
	PublicLimit int           `env:"RATE_LIMIT_PUBLIC"        envDefault:"20"`
}

// New parses the configuration from environment variables. It terminates the
// process on a missing required value.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks the fields that have no safe default.
func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
