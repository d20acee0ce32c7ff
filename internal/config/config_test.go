package config

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SEED_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Port != "8686" {
		t.Fatalf("default port %q, want 8686", cfg.Port)
	}
	if cfg.DBPath != "./ticketapp.db" {
		t.Fatalf("default db path %q", cfg.DBPath)
	}
	if cfg.SeedURL != "http://localhost:8686/data/tickets.json" {
		t.Fatalf("default seed url %q", cfg.SeedURL)
	}
	if len(cfg.CSRFKey) != 32 || len(cfg.SessionKey) != 32 {
		t.Fatalf("generated keys have wrong length: %d, %d", len(cfg.CSRFKey), len(cfg.SessionKey))
	}
}

func TestLoadConfig_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Port != "8686" {
		t.Fatalf("invalid port should fall back to default, got %q", cfg.Port)
	}
}

func TestLoadConfig_ExplicitKeysAndSeedURL(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 32)
	encoded := base64.StdEncoding.EncodeToString(key)
	t.Setenv("CSRF_KEY", encoded)
	t.Setenv("SESSION_KEY", encoded)
	t.Setenv("SEED_URL", "https://example.com/seed.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if !bytes.Equal(cfg.CSRFKey, key) || !bytes.Equal(cfg.SessionKey, key) {
		t.Fatal("explicit keys not decoded")
	}
	if cfg.SeedURL != "https://example.com/seed.json" {
		t.Fatalf("seed url override ignored: %q", cfg.SeedURL)
	}
}

func TestLoadConfig_ShortKeyRegenerates(t *testing.T) {
	t.Setenv("CSRF_KEY", base64.StdEncoding.EncodeToString([]byte("too-short")))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if len(cfg.CSRFKey) != 32 {
		t.Fatalf("short key should be replaced by a generated 32-byte key, got %d bytes", len(cfg.CSRFKey))
	}
}
