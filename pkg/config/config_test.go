package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/landchain/titleledger/pkg/registry"
)

const sampleYAML = `
ledger:
  admin: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
  verification_policy: carry
  event_buffer: 64
storage:
  data_dir: /var/lib/titleledger
  journal_events: true
gateway:
  listen_addr: "127.0.0.1:7001"
  require_auth: false
  rate_limit_per_min: 60
  rate_limit_burst: 10
  request_timeout: 5s
logging:
  enable_colors: false
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Ledger.VerificationPolicy != registry.PolicyCarry {
		t.Errorf("expected carry policy, got %q", cfg.Ledger.VerificationPolicy)
	}
	if cfg.Ledger.EventBuffer != 64 {
		t.Errorf("expected event buffer 64, got %d", cfg.Ledger.EventBuffer)
	}
	if cfg.Gateway.ListenAddr != "127.0.0.1:7001" {
		t.Errorf("unexpected listen addr %q", cfg.Gateway.ListenAddr)
	}
	if cfg.Gateway.RequireAuth {
		t.Error("require_auth should be overridden to false")
	}
	if cfg.Storage.DataDir != "/var/lib/titleledger" {
		t.Errorf("unexpected data dir %q", cfg.Storage.DataDir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gateway.ListenAddr != Default().Gateway.ListenAddr {
		t.Error("missing file should yield defaults")
	}
}

func TestDecodeStrictRejectsUnknownFields(t *testing.T) {
	bad := strings.NewReader("ledger:\n  admin: \"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed\"\n  bogus_field: 1\n")
	var cfg Config
	if err := DecodeStrict(bad, &cfg); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing admin", func(c *Config) { c.Ledger.Admin = "" }, "ledger.admin"},
		{"bad admin", func(c *Config) { c.Ledger.Admin = "xyz" }, "ledger.admin"},
		{"bad policy", func(c *Config) { c.Ledger.VerificationPolicy = "sometimes" }, "ledger.verification_policy"},
		{"bad listen addr", func(c *Config) { c.Gateway.ListenAddr = "not-an-addr" }, "gateway.listen_addr"},
		{"negative rate", func(c *Config) { c.Gateway.RateLimitPerMin = -1 }, "gateway.rate_limit"},
		{"rate without burst", func(c *Config) { c.Gateway.RateLimitPerMin = 10; c.Gateway.RateLimitBurst = 0 }, "gateway.rate_limit_burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Ledger.Admin = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error mentioning %q, got %v", tt.wantErr, errs)
			}
		})
	}
}
