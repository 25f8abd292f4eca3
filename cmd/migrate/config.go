package main

import (
	"errors"

	"bookcatalog/internal/config"
)

type options struct {
	from  string
	to    string
	key   string
	force bool
}

// defaults fills -from and -key from the catalog configuration.
func defaults() (options, error) {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return options{}, err
	}
	return options{
		from: cfg.StoreDriver + ":" + cfg.StorePath,
		key:  cfg.StoreKey,
	}, nil
}

func (o options) validate() error {
	switch {
	case o.from == "":
		return errors.New("-from is required")
	case o.to == "":
		return errors.New("-to is required")
	case o.from == o.to:
		return errors.New("-from and -to name the same store")
	case o.key == "":
		return errors.New("-key must not be empty")
	}
	return nil
}
