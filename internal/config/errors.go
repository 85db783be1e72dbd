package config

import (
	"errors"
)

// Sentinel errors returned by Load and Validate. ErrUnknownDriver and
// ErrUnknownStrategy are always reported together with ErrInvalidConfig.
var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrLoadConfig      = errors.New("load config failed")
	ErrUnknownDriver   = errors.New("unknown store_driver")
	ErrUnknownStrategy = errors.New("unknown scoring_strategy")
)
