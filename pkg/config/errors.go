package config

import "errors"

var (
	ErrFailedToReadConfig  = errors.New("config: failed to read config file")
	ErrFailedToParseConfig = errors.New("config: failed to parse config")
	ErrFailedToLoadEnvFile = errors.New("config: failed to load .env file")
)
