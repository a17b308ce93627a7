// Package config loads the adapter's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
)

type Config struct {
	// Token is the provider API token, a hexadecimal string.
	Token string `yaml:"token"`

	API struct {
		BaseURL string `yaml:"base_url,omitempty"`
	} `yaml:"api,omitempty"`

	// DefaultTTL is applied to records created without an explicit TTL.
	DefaultTTL int `yaml:"default_ttl,omitempty"`

	// AuthorityPoll bounds the wait for a freshly created zone to become
	// visible. Propagation latency varies by provider, so both knobs are
	// configuration rather than constants.
	AuthorityPoll struct {
		Attempts        int `yaml:"attempts,omitempty"`
		IntervalSeconds int `yaml:"interval_seconds,omitempty"`
	} `yaml:"authority_poll,omitempty"`

	// Nameservers are the authoritative nameservers emitted in the zone
	// preamble during AXFR synthesis.
	Nameservers []string `yaml:"nameservers,omitempty"`

	SOA struct {
		// Contact is the zone contact mailbox, e.g. "hostmaster@example.com".
		Contact string `yaml:"contact,omitempty"`
	} `yaml:"soa,omitempty"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.DefaultTTL = entity.DefaultTTL
	cfg.AuthorityPoll.Attempts = 10
	cfg.AuthorityPoll.IntervalSeconds = 1
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigReadFailed, path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigParseFailed, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigValidateFail, path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return domain.RequiredField("token")
	}
	if !IsHexToken(c.Token) {
		return fmt.Errorf("%w: token must be hexadecimal", domain.ErrInvalidToken)
	}
	if c.DefaultTTL < 0 {
		return fmt.Errorf("%w: default_ttl must be non-negative", domain.ErrInvalidTTL)
	}
	if c.AuthorityPoll.Attempts < 0 || c.AuthorityPoll.IntervalSeconds < 0 {
		return fmt.Errorf("%w: authority_poll values must be non-negative", domain.ErrConfigValidateFail)
	}
	return nil
}

// IsHexToken reports whether s looks like a provider API token: a
// non-empty string of hexadecimal characters.
func IsHexToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
