package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dnsbridge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "token: deadbeef\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultTTL != 1800 {
		t.Errorf("DefaultTTL = %d, want 1800", cfg.DefaultTTL)
	}
	if cfg.AuthorityPoll.Attempts != 10 || cfg.AuthorityPoll.IntervalSeconds != 1 {
		t.Errorf("AuthorityPoll = %+v", cfg.AuthorityPoll)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
token: deadbeef
api:
  base_url: https://api.example.test/v4
default_ttl: 600
authority_poll:
  attempts: 3
  interval_seconds: 2
nameservers:
  - ns1.panel.example.
  - ns2.panel.example.
soa:
  contact: hostmaster@panel.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.test/v4" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.DefaultTTL != 600 {
		t.Errorf("DefaultTTL = %d", cfg.DefaultTTL)
	}
	if len(cfg.Nameservers) != 2 {
		t.Errorf("Nameservers = %v", cfg.Nameservers)
	}
	if cfg.SOA.Contact != "hostmaster@panel.example" {
		t.Errorf("Contact = %q", cfg.SOA.Contact)
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing token",
			content: "default_ttl: 600\n",
			wantErr: domain.ErrConfigValidateFail,
		},
		{
			name:    "non-hex token",
			content: "token: not-a-token\n",
			wantErr: domain.ErrConfigValidateFail,
		},
		{
			name:    "malformed yaml",
			content: "token: [\n",
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, domain.ErrConfigReadFailed) {
		t.Errorf("expected ErrConfigReadFailed, got %v", err)
	}
}

func TestIsHexToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"deadbeef", true},
		{"DEADBEEF01", true},
		{"", false},
		{"xyz", false},
		{"dead beef", false},
	}
	for _, tt := range tests {
		if got := IsHexToken(tt.token); got != tt.want {
			t.Errorf("IsHexToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
