package config

import "errors"

var (
	ErrUnsupportedFormat    = errors.New("unsupported config file format")
	ErrUnknownPRNG          = errors.New("unknown prng")
	ErrUnknownConditionKind = errors.New("unknown scenario condition kind")
)
