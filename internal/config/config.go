// Package config reads catalog settings from the environment.
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Drivers lists the accepted CATALOG_STORE_DRIVER values.
var Drivers = []string{"bbolt", "sqlite", "memory"}

type Config struct {
	StoreDriver string `env:"CATALOG_STORE_DRIVER" envDefault:"bbolt"`
	StorePath   string `env:"CATALOG_STORE_PATH" envDefault:"catalog.db"`
	StoreKey    string `env:"CATALOG_STORE_KEY" envDefault:"livraria_aura_books"`
	Locale      string `env:"CATALOG_LOCALE" envDefault:"pt-BR"`
	SeedOnEmpty bool   `env:"CATALOG_SEED_ON_EMPTY" envDefault:"true"`

	AdminUser string `env:"CATALOG_ADMIN_USER" envDefault:"admin"`
	// AdminPasswordHash is a bcrypt hash. Empty disables every mutation.
	AdminPasswordHash string `env:"CATALOG_ADMIN_PASSWORD_HASH"`
	// AdminPassword lets scripts log in without the --password flag.
	AdminPassword string `env:"CATALOG_ADMIN_PASSWORD"`

	LogLevel string `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
}

// LoadEnvFiles reads .env and .env.local from the working directory.
// Variables already set in the process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(Drivers, c.StoreDriver) {
		return fmt.Errorf("CATALOG_STORE_DRIVER: unknown driver %q (want one of %v)", c.StoreDriver, Drivers)
	}
	if c.StoreDriver != "memory" && c.StorePath == "" {
		return fmt.Errorf("CATALOG_STORE_PATH is required for driver %q", c.StoreDriver)
	}
	if c.StoreKey == "" {
		return fmt.Errorf("CATALOG_STORE_KEY must not be empty")
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Language parses Locale into a BCP 47 tag.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("CATALOG_LOCALE: %w", err)
	}
	return tag, nil
}
