// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// BackendURL is the base origin of the announcement REST backend.
	BackendURL    string `env:"RAILVOICE_BACKEND_URL" envDefault:"http://localhost:5001"`
	SessionSecret string `env:"RAILVOICE_SESSION_SECRET,required"`
	ServerHost    string `env:"RAILVOICE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"RAILVOICE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"RAILVOICE_ENV" envDefault:"development"`
	LogLevel      string `env:"RAILVOICE_LOG_LEVEL" envDefault:"info"`

	// DBPath is the local state database (sessions, event log). It never
	// holds business entities; those stay on the backend.
	DBPath string `env:"RAILVOICE_DB_PATH" envDefault:"./data/railvoice.db"`

	// MediaStoragePrefix is the backend's on-disk media root, stripped
	// from stored audio paths when deriving public URLs.
	MediaStoragePrefix string `env:"RAILVOICE_MEDIA_STORAGE_PREFIX" envDefault:"/var/www/war-ddh/ai-audio-translations/"`

	// RoutesPerPage is the page size for the route table; GroupsPerPage
	// for the grouped translation/audio/segment browsers.
	RoutesPerPage int `env:"RAILVOICE_ROUTES_PER_PAGE" envDefault:"7"`
	GroupsPerPage int `env:"RAILVOICE_GROUPS_PER_PAGE" envDefault:"10"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("RAILVOICE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if _, err := url.ParseRequestURI(cfg.BackendURL); err != nil {
		return nil, fmt.Errorf("RAILVOICE_BACKEND_URL is not a valid URL: %w", err)
	}

	if cfg.RoutesPerPage < 1 || cfg.GroupsPerPage < 1 {
		return nil, fmt.Errorf("page sizes must be positive, got routes=%d groups=%d",
			cfg.RoutesPerPage, cfg.GroupsPerPage)
	}

	return cfg, nil
}
