package config

import (
	"fmt"
	"net"
)

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.TreasuryAccount == "" {
		return ErrEmptyTreasury
	}
	if cfg.DustEpsilon < 0 {
		return ErrNegativeEpsilon
	}
	if cfg.NewContentReserve < 0 {
		return ErrNegativeReserve
	}
	if cfg.PayoutScale < 1 {
		return ErrInvalidScale
	}
	if err := validateAddr(cfg.DNSUpstream); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDNSUpstream, err)
	}
	return nil
}

// validateAddr checks that addr is a valid host:port address.
func validateAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	return err
}
