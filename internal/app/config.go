package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BaseDir   string // the workspace root; must be an absolute or relative directory path
	LogFormat string
	LogLevel  string
	UseCache  bool // whether Load should consult the parse cache
}

// NewConfig validates cfg and returns it wrapped, ready for NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BaseDir == "" {
		return nil, errors.New("BaseDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
