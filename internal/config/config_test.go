// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

const testSecret = "test-secret-key-32-bytes-long!!!"

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RAILVOICE_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.BackendURL != "http://localhost:5001" {
		t.Errorf("BackendURL = %q, want default", cfg.BackendURL)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.RoutesPerPage != 7 || cfg.GroupsPerPage != 10 {
		t.Errorf("page sizes = (%d, %d), want (7, 10)", cfg.RoutesPerPage, cfg.GroupsPerPage)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without a session secret")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RAILVOICE_SESSION_SECRET", "too-short")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a short session secret")
	}
}

func TestLoad_BadBackendURL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RAILVOICE_SESSION_SECRET", testSecret)
	setEnv(t, "RAILVOICE_BACKEND_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an invalid backend URL")
	}
}

func TestLoad_BadPageSize(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RAILVOICE_SESSION_SECRET", testSecret)
	setEnv(t, "RAILVOICE_ROUTES_PER_PAGE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a zero page size")
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RAILVOICE_SESSION_SECRET", testSecret)
	setEnv(t, "RAILVOICE_BACKEND_URL", "https://announce.example.net")
	setEnv(t, "RAILVOICE_ENV", "production")
	setEnv(t, "RAILVOICE_SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.BackendURL != "https://announce.example.net" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if cfg.ServerAddr() != "localhost:9000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
}
