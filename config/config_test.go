package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"TreasuryAccount", cfg.TreasuryAccount, "treasury.cmg"},
		{"DustEpsilon", cfg.DustEpsilon, 0.001},
		{"NewContentReserve", cfg.NewContentReserve, 0.05},
		{"PayoutScale", cfg.PayoutScale, 1e8},
		{"DNSUpstream", cfg.DNSUpstream, "8.8.8.8:53"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	// DataDir depends on the home directory, so only assert it is set.
	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	original := Config{
		DataDir:           "/tmp/test-cmg",
		TreasuryAccount:   "vault.cmg",
		DustEpsilon:       0.01,
		NewContentReserve: 1.5,
		PayoutScale:       1e6,
		DNSUpstream:       "1.1.1.1:53",
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"DataDir", loaded.DataDir, original.DataDir},
		{"TreasuryAccount", loaded.TreasuryAccount, original.TreasuryAccount},
		{"DustEpsilon", loaded.DustEpsilon, original.DustEpsilon},
		{"NewContentReserve", loaded.NewContentReserve, original.NewContentReserve},
		{"PayoutScale", loaded.PayoutScale, original.PayoutScale},
		{"DNSUpstream", loaded.DNSUpstream, original.DNSUpstream},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config")

	cfg := DefaultConfig()
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// LoadConfig error tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := "this-is-not-key-value\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigLine) {
		t.Errorf("LoadConfig bad line: got %v, want ErrInvalidConfigLine", err)
	}
}

func TestLoadConfigBadNumber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := "dustepsilon = not-a-number\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigLine) {
		t.Errorf("LoadConfig bad number: got %v, want ErrInvalidConfigLine", err)
	}
}

func TestLoadConfigCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := `# This is a comment
treasury = platform.cmg

# Another comment
dustepsilon = 0.002
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.TreasuryAccount != "platform.cmg" {
		t.Errorf("TreasuryAccount = %q, want %q", cfg.TreasuryAccount, "platform.cmg")
	}
	if cfg.DustEpsilon != 0.002 {
		t.Errorf("DustEpsilon = %v, want %v", cfg.DustEpsilon, 0.002)
	}
	// Unset fields should retain defaults.
	if cfg.NewContentReserve != 0.05 {
		t.Errorf("NewContentReserve = %v, want default %v", cfg.NewContentReserve, 0.05)
	}
}

func TestLoadConfigUnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := "futurekey = futurevalue\ntreasury = platform.cmg\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig with unknown key: %v", err)
	}
	if cfg.TreasuryAccount != "platform.cmg" {
		t.Errorf("TreasuryAccount = %q, want %q", cfg.TreasuryAccount, "platform.cmg")
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "empty_datadir",
			modify:  func(c *Config) { c.DataDir = "" },
			wantErr: ErrEmptyDataDir,
		},
		{
			name:    "empty_treasury",
			modify:  func(c *Config) { c.TreasuryAccount = "" },
			wantErr: ErrEmptyTreasury,
		},
		{
			name:    "negative_epsilon",
			modify:  func(c *Config) { c.DustEpsilon = -0.001 },
			wantErr: ErrNegativeEpsilon,
		},
		{
			name:    "negative_reserve",
			modify:  func(c *Config) { c.NewContentReserve = -1 },
			wantErr: ErrNegativeReserve,
		},
		{
			name:    "zero_scale",
			modify:  func(c *Config) { c.PayoutScale = 0 },
			wantErr: ErrInvalidScale,
		},
		{
			name:    "bad_dns_upstream",
			modify:  func(c *Config) { c.DNSUpstream = "not-a-valid-addr" },
			wantErr: ErrInvalidDNSUpstream,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			if err := ValidateConfig(cfg); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
