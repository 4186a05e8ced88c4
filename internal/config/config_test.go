// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var allEnvVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"CONTENT_DIR", "PUBLIC_DIR",
	"ADMIN_USER", "ADMIN_PASSWORD_HASH", "ADMIN_RATE_LIMIT",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "VALKEY_DB", "CACHE_TTL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"S3_BUCKET", "S3_PREFIX", "S3_PUBLIC_URL",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset. t.Setenv restores the originals after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func testHash(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	return string(hash)
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("ContentDir", cfg.ContentDir, "content")
	check("PublicDir", cfg.PublicDir, "public")
	check("AdminUser", cfg.AdminUser, "admin")
	check("AdminPasswordHash", cfg.AdminPasswordHash, "")
	check("ValkeyHost", cfg.ValkeyHost, "")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("S3Endpoint", cfg.S3Endpoint, "")
	check("S3Region", cfg.S3Region, "fsn1")
	check("S3Bucket", cfg.S3Bucket, "casinoreviews-public")
	check("S3Prefix", cfg.S3Prefix, "images")

	if cfg.ValkeyDB != 0 {
		t.Errorf("ValkeyDB = %d, want 0", cfg.ValkeyDB)
	}
	if cfg.AdminRateLimit != 60 {
		t.Errorf("AdminRateLimit = %d, want 60", cfg.AdminRateLimit)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() should be false without VALKEY_HOST")
	}
}

// TestLoad_EnvOverrides verifies that every environment variable properly
// overrides the default value.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	hash := testHash(t)

	overrides := map[string]string{
		"APP_HOST":            "127.0.0.1",
		"APP_PORT":            "9090",
		"APP_ENV":             "testing",
		"CONTENT_DIR":         "/srv/content",
		"PUBLIC_DIR":          "/srv/public",
		"ADMIN_USER":          "editor",
		"ADMIN_PASSWORD_HASH": hash,
		"ADMIN_RATE_LIMIT":    "20",
		"VALKEY_HOST":         "cache.example.com",
		"VALKEY_PORT":         "6380",
		"VALKEY_PASSWORD":     "cachepass",
		"VALKEY_DB":           "3",
		"CACHE_TTL":           "90s",
		"S3_ENDPOINT":         "https://s3.example.com",
		"S3_REGION":           "eu-central-1",
		"S3_ACCESS_KEY":       "AKIATEST",
		"S3_SECRET_KEY":       "secrettest",
		"S3_BUCKET":           "my-public",
		"S3_PREFIX":           "media",
		"S3_PUBLIC_URL":       "https://cdn.example.com",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "9090")
	check("Env", cfg.Env, "testing")
	check("ContentDir", cfg.ContentDir, "/srv/content")
	check("PublicDir", cfg.PublicDir, "/srv/public")
	check("AdminUser", cfg.AdminUser, "editor")
	check("AdminPasswordHash", cfg.AdminPasswordHash, hash)
	check("ValkeyHost", cfg.ValkeyHost, "cache.example.com")
	check("ValkeyPort", cfg.ValkeyPort, "6380")
	check("ValkeyPassword", cfg.ValkeyPassword, "cachepass")
	check("S3Endpoint", cfg.S3Endpoint, "https://s3.example.com")
	check("S3Region", cfg.S3Region, "eu-central-1")
	check("S3AccessKey", cfg.S3AccessKey, "AKIATEST")
	check("S3SecretKey", cfg.S3SecretKey, "secrettest")
	check("S3Bucket", cfg.S3Bucket, "my-public")
	check("S3Prefix", cfg.S3Prefix, "media")
	check("S3PublicURL", cfg.S3PublicURL, "https://cdn.example.com")

	if cfg.ValkeyDB != 3 {
		t.Errorf("ValkeyDB = %d, want 3", cfg.ValkeyDB)
	}
	if cfg.AdminRateLimit != 20 {
		t.Errorf("AdminRateLimit = %d, want 20", cfg.AdminRateLimit)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
	if !cfg.CacheEnabled() {
		t.Error("CacheEnabled() should be true with VALKEY_HOST set")
	}
}

// TestLoad_InvalidValues verifies that malformed numeric, duration and hash
// values are rejected with an error naming the variable.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric db", key: "VALKEY_DB", val: "three"},
		{name: "non-numeric rate limit", key: "ADMIN_RATE_LIMIT", val: "lots"},
		{name: "zero rate limit", key: "ADMIN_RATE_LIMIT", val: "0"},
		{name: "bad ttl", key: "CACHE_TTL", val: "soon"},
		{name: "plaintext password", key: "ADMIN_PASSWORD_HASH", val: "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should reject %s=%q", tt.key, tt.val)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error should mention %s, got: %v", tt.key, err)
			}
		})
	}
}

// TestLoad_ProductionRequiresPasswordHash verifies that production mode
// refuses to start without an admin password hash.
func TestLoad_ProductionRequiresPasswordHash(t *testing.T) {
	t.Run("rejects missing hash", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() should return an error when production has no admin hash")
		}
		if !strings.Contains(err.Error(), "ADMIN_PASSWORD_HASH") {
			t.Errorf("error should mention ADMIN_PASSWORD_HASH, got: %v", err)
		}
	})

	t.Run("accepts bcrypt hash", func(t *testing.T) {
		clearEnv(t)
		hash := testHash(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("ADMIN_PASSWORD_HASH", hash)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.AdminPasswordHash != hash {
			t.Errorf("AdminPasswordHash = %q, want %q", cfg.AdminPasswordHash, hash)
		}
	})
}

// TestLoad_DevelopmentAllowsMissingHash ensures a missing hash does not
// cause an error outside of production.
func TestLoad_DevelopmentAllowsMissingHash(t *testing.T) {
	for _, env := range []string{"development", "testing", ""} {
		t.Run("env="+env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", env)

			if _, err := Load(); err != nil {
				t.Fatalf("Load() should not error in %q mode without a hash, got: %v", env, err)
			}
		})
	}
}

// TestAddr verifies the server listen address format.
func TestAddr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "default", host: "0.0.0.0", port: "8080", expected: "0.0.0.0:8080"},
		{name: "localhost with custom port", host: "127.0.0.1", port: "3000", expected: "127.0.0.1:3000"},
		{name: "empty host", host: "", port: "8080", expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: tt.host, Port: tt.port}
			if got := cfg.Addr(); got != tt.expected {
				t.Errorf("Addr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestIsDev verifies the IsDev method for various environment modes.
func TestIsDev(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{env: "development", expected: true},
		{env: "production", expected: false},
		{env: "testing", expected: false},
		{env: "", expected: false},
		{env: "Development", expected: false},
		{env: "dev", expected: false},
	}

	for _, tt := range tests {
		t.Run("env="+tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDev(); got != tt.expected {
				t.Errorf("IsDev() = %v, want %v (env=%q)", got, tt.expected, tt.env)
			}
		})
	}
}
