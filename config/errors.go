package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrEmptyTreasury indicates no treasury account is configured.
	ErrEmptyTreasury = errors.New("config: treasury account must not be empty")

	// ErrNegativeEpsilon indicates the dust epsilon is negative.
	ErrNegativeEpsilon = errors.New("config: dust epsilon must not be negative")

	// ErrNegativeReserve indicates the new-content reserve is negative.
	ErrNegativeReserve = errors.New("config: new-content reserve must not be negative")

	// ErrInvalidScale indicates the payout scale is below one minor unit.
	ErrInvalidScale = errors.New("config: payout scale must be at least 1")

	// ErrInvalidDNSUpstream indicates the DNS upstream address is malformed.
	ErrInvalidDNSUpstream = errors.New("config: invalid DNS upstream address")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
