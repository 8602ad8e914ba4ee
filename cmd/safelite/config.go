package main

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/safelite/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// config holds the defaults of command flags. Every value can be set with
// an environment variable and overwritten by a flag.
type config struct {
	DB       string `env:"SAFELITE_DB" envDefault:"safelite.db"`
	PrivKey  string `env:"SAFELITE_PRIV_KEY"`
	LogLevel string `env:"SAFELITE_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (*config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if c.PrivKey == "" {
		c.PrivKey = os.Getenv("HOME") + "/.safelite.priv.key"
	}
	return &c, nil
}

// mustConfig is used while declaring flags, before any error can be
// returned to the caller.
func mustConfig() *config {
	c, err := loadConfig()
	if err != nil {
		fatalf("Cannot load configuration. %s", err)
	}
	return c
}

// newLogger returns a logger writing to stderr messages of given level and
// above.
func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), opt), nil
}
