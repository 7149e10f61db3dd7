package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Token modes understood by the auth gate.
const (
	TokenModeUsername = "username"
	TokenModeJWT      = "jwt"
)

// Config holds all configuration for the application. By centralizing these
// settings, we make the application easier to manage and deploy.
type Config struct {
	// --- Server & Paths ---
	ServerAddr      string        `env:"SERVER_ADDR,default=127.0.0.1:8000"`
	DataPath        string        `env:"DATA_PATH,default=./data"`
	DatabaseFile    string        `env:"DATABASE_FILE,default=database.db"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	CorsOriginList  string        `env:"CORS_ORIGINS,default=*"`

	// --- Security ---
	UsersFile     string `env:"USERS_FILE"`
	AuthTokenMode string `env:"AUTH_TOKEN_MODE,default=username"`
	JwtSecret     string `env:"JWT_SECRET"`

	// --- Logging ---
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	// --- Parsed & Derived Fields ---
	// DbFile is the full path of the SQLite database file.
	DbFile string
	// CorsOrigins is CorsOriginList split on commas.
	CorsOrigins []string
}

// New creates a new Config instance by loading values from environment variables.
// It validates the result and returns an error if the configuration is invalid,
// preventing the server from starting.
func New() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize validates the decoded values and fills in derived fields.
func (c *Config) finalize() error {
	c.AuthTokenMode = strings.ToLower(strings.TrimSpace(c.AuthTokenMode))
	switch c.AuthTokenMode {
	case TokenModeUsername:
	case TokenModeJWT:
		// A signed token is worthless without a secret, so fail fast.
		if c.JwtSecret == "" {
			return errors.New("JWT_SECRET must be set when AUTH_TOKEN_MODE=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_TOKEN_MODE %q", c.AuthTokenMode)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}

	if c.DatabaseFile == "" {
		return errors.New("DATABASE_FILE must not be empty")
	}

	var origins []string
	for _, o := range strings.Split(c.CorsOriginList, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CorsOrigins = origins

	c.DbFile = filepath.Join(c.DataPath, c.DatabaseFile)
	return nil
}
