// Package config holds the marketplace policy knobs: the treasury account,
// the unspent-refund epsilon, the reserve floor for never-bid content, and
// the payout scaling factor. Values are persisted in a simple "key = value"
// file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all marketplace configuration values.
type Config struct {
	// DataDir is the directory for persistent state (content registry db).
	DataDir string

	// TreasuryAccount receives the platform share of royalties and
	// licence revenue.
	TreasuryAccount string

	// DustEpsilon is the threshold below which an unspent bid remainder
	// is not refunded.
	DustEpsilon float64

	// NewContentReserve is the minimum licence price for content that has
	// never received a bid.
	NewContentReserve float64

	// PayoutScale converts human-scaled currency units to the payment
	// medium's minor unit at dispatch time.
	PayoutScale float64

	// DNSUpstream is the recursive resolver used for payout handle
	// resolution (host:port).
	DNSUpstream string
}

// DefaultConfig returns a Config populated with default values.
// DataDir defaults to ~/.cmg (falling back to ./.cmg if the home
// directory cannot be determined).
func DefaultConfig() Config {
	dataDir := ".cmg"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".cmg")
	}
	return Config{
		DataDir:           dataDir,
		TreasuryAccount:   "treasury.cmg",
		DustEpsilon:       0.001,
		NewContentReserve: 0.05,
		PayoutScale:       1e8,
		DNSUpstream:       "8.8.8.8:53",
	}
}

// LoadConfig reads a configuration file at path. Missing keys retain their
// default values; unknown keys are ignored for forward compatibility.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := applyValue(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// applyValue sets a single configuration key. Unknown keys are ignored.
func applyValue(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "datadir":
		cfg.DataDir = value
	case "treasury":
		cfg.TreasuryAccount = value
	case "dustepsilon":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("dustepsilon: %w", err)
		}
		cfg.DustEpsilon = f
	case "newcontentreserve":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("newcontentreserve: %w", err)
		}
		cfg.NewContentReserve = f
	case "payoutscale":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("payoutscale: %w", err)
		}
		cfg.PayoutScale = f
	case "dnsupstream":
		cfg.DNSUpstream = value
	}
	return nil
}

// SaveConfig writes the configuration to path, creating parent directories
// as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# CMG marketplace configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "treasury = %s\n", cfg.TreasuryAccount)
	fmt.Fprintf(&b, "dustepsilon = %g\n", cfg.DustEpsilon)
	fmt.Fprintf(&b, "newcontentreserve = %g\n", cfg.NewContentReserve)
	fmt.Fprintf(&b, "payoutscale = %g\n", cfg.PayoutScale)
	fmt.Fprintf(&b, "dnsupstream = %s\n", cfg.DNSUpstream)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
