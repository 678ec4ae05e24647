package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"inventory_api/internal/model"
)

// Config holds all runtime configuration. It is built once in main and
// passed down; nothing in the business logic reads the environment.
type Config struct {
	ServerPort   string
	DataDir      string
	JWTSecret    string
	TokenTTL     time.Duration
	RegisterRole string // role assigned on self-registration
}

// Load reads configuration from environment variables. The signing secret
// has no default; running without one is a startup error.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	ttlSeconds := int64(7200)
	if v := os.Getenv("TOKEN_TTL_SECONDS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_SECONDS: %q", v)
		}
		ttlSeconds = parsed
	}

	registerRole := os.Getenv("REGISTER_DEFAULT_ROLE")
	if registerRole == "" {
		registerRole = model.RoleUser
	}
	if registerRole != model.RoleUser && registerRole != model.RoleAdmin {
		return nil, fmt.Errorf("invalid REGISTER_DEFAULT_ROLE: %q", registerRole)
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	return &Config{
		ServerPort:   port,
		DataDir:      dataDir,
		JWTSecret:    secret,
		TokenTTL:     time.Duration(ttlSeconds) * time.Second,
		RegisterRole: registerRole,
	}, nil
}
