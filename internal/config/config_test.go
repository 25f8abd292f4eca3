package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var catalogVars = []string{
	"CATALOG_STORE_DRIVER",
	"CATALOG_STORE_PATH",
	"CATALOG_STORE_KEY",
	"CATALOG_LOCALE",
	"CATALOG_SEED_ON_EMPTY",
	"CATALOG_ADMIN_USER",
	"CATALOG_ADMIN_PASSWORD_HASH",
	"CATALOG_ADMIN_PASSWORD",
	"CATALOG_LOG_LEVEL",
}

// clearEnv unsets every catalog variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range catalogVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		StoreDriver: "bbolt",
		StorePath:   "catalog.db",
		StoreKey:    "livraria_aura_books",
		Locale:      "pt-BR",
		SeedOnEmpty: true,
		AdminUser:   "admin",
		LogLevel:    "info",
	}, cfg)

	tag, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.BrazilianPortuguese, tag)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_STORE_DRIVER", "sqlite")
	t.Setenv("CATALOG_STORE_PATH", "/tmp/books.sqlite")
	t.Setenv("CATALOG_STORE_KEY", "other_key")
	t.Setenv("CATALOG_LOCALE", "en-US")
	t.Setenv("CATALOG_SEED_ON_EMPTY", "false")
	t.Setenv("CATALOG_ADMIN_USER", "aura")
	t.Setenv("CATALOG_ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "/tmp/books.sqlite", cfg.StorePath)
	assert.Equal(t, "other_key", cfg.StoreKey)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.False(t, cfg.SeedOnEmpty)
	assert.Equal(t, "aura", cfg.AdminUser)
	assert.Equal(t, "$2a$10$hash", cfg.AdminPasswordHash)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "CATALOG_STORE_DRIVER", "postgres"},
		{"bad bool", "CATALOG_SEED_ON_EMPTY", "maybe"},
		{"bad locale", "CATALOG_LOCALE", "not a locale!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := Config{StoreDriver: "memory", StoreKey: "k", Locale: "pt-BR"}
	assert.NoError(t, cfg.Validate())

	cfg.StoreDriver = "bbolt"
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	clearEnv(t)
	tmp := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"),
		[]byte("CATALOG_STORE_PATH=from_file\nCATALOG_STORE_KEY=file_key\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env.local"),
		[]byte("CATALOG_STORE_KEY=local_key\nCATALOG_LOCALE=en\n"), 0o644))

	t.Setenv("CATALOG_STORE_PATH", "from_env")
	chdir(t, tmp)

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("CATALOG_STORE_PATH"))
	// .env is loaded first, so .env.local cannot override it either.
	assert.Equal(t, "file_key", os.Getenv("CATALOG_STORE_KEY"))
	assert.Equal(t, "en", os.Getenv("CATALOG_LOCALE"))
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
