// Package cli wires the shared startup sequence for every command:
// .env loading, configuration, logging, the session store and the API
// gateway.
package cli

import (
	"github.com/joho/godotenv"

	"roomsplit/internal/api"
	"roomsplit/internal/config"
	"roomsplit/internal/log"
	"roomsplit/internal/session"
)

// Env bundles the initialized client components.
type Env struct {
	Config  *config.Config
	Logger  *log.Logger
	Session *session.Store
	API     *api.Client
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Bootstrap initializes the full client environment. The caller owns
// the returned Env and must Close it.
func Bootstrap() (*Env, error) {
	LoadEnvFile()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:     cfg.SlogLevel(),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	store, err := session.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, store, logger)

	logger.Debug("Client initialized",
		log.FieldOperation, log.OpStartup,
		"api_url", cfg.APIBaseURL,
		"state_path", cfg.StatePath)

	return &Env{
		Config:  cfg,
		Logger:  logger,
		Session: store,
		API:     client,
	}, nil
}

// Close releases the environment's resources.
func (e *Env) Close() error {
	if e.Session != nil {
		return e.Session.Close()
	}
	return nil
}
