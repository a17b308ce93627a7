// Package linode reconciles canonical DNS records against the Linode
// Domains API. It keeps two process-scoped caches: zone metadata keyed by
// domain name, and per-zone records keyed by canonical fields, so repeat
// mutations can target remote resources without re-listing the zone.
//
// The package is single-threaded by contract: operations issue their
// network calls serially and the caches carry no locking. Callers that
// need cross-process or cross-goroutine mutation of the same zone must
// serialize themselves (the CLI does, with a per-zone file lock).
package linode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lite-lake/infra-dnsbridge/internal/config"
	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/service"
	"github.com/lite-lake/infra-dnsbridge/internal/provider/api"
)

// Authority supplies host-side authoritative data used to build the zone
// preamble during AXFR synthesis.
type Authority interface {
	SOA(ctx context.Context, zone string) (*entity.Record, error)
	Nameservers(ctx context.Context, zone string) ([]string, error)
}

type Provider struct {
	api       *api.Client
	canon     *service.Canonicalizer
	authority Authority

	pollAttempts int
	pollInterval time.Duration

	zones       map[string]entity.ZoneMeta
	zonesLoaded bool

	// records caches observed records per zone, keyed by Record.Key.
	// Entries appear on create and on listing, and leave on delete or
	// when superseded by an update.
	records map[string]map[string]*entity.Record
}

type Option func(*Provider)

func WithAuthority(a Authority) Option {
	return func(p *Provider) {
		p.authority = a
	}
}

func WithDefaultTTL(ttl int) Option {
	return func(p *Provider) {
		p.canon = service.NewCanonicalizer(ttl)
	}
}

func WithAuthorityPoll(attempts int, interval time.Duration) Option {
	return func(p *Provider) {
		p.pollAttempts = attempts
		p.pollInterval = interval
	}
}

func New(client *api.Client, opts ...Option) *Provider {
	p := &Provider{
		api:          client,
		canon:        service.NewCanonicalizer(entity.DefaultTTL),
		pollAttempts: 10,
		pollInterval: time.Second,
		zones:        make(map[string]entity.ZoneMeta),
		records:      make(map[string]map[string]*entity.Record),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig wires a provider from the loaded configuration, backed by
// a static authority built from the configured nameservers and contact.
func NewFromConfig(cfg *config.Config) *Provider {
	var apiOpts []api.Option
	if cfg.API.BaseURL != "" {
		apiOpts = append(apiOpts, api.WithBaseURL(cfg.API.BaseURL))
	}
	return New(api.New(cfg.Token, apiOpts...),
		WithDefaultTTL(cfg.DefaultTTL),
		WithAuthorityPoll(cfg.AuthorityPoll.Attempts, time.Duration(cfg.AuthorityPoll.IntervalSeconds)*time.Second),
		WithAuthority(NewStaticAuthority(cfg.Nameservers, cfg.SOA.Contact)),
	)
}

func (p *Provider) Name() string {
	return "linode"
}

// ValidateCredentials checks the token shape, then proves it against the
// account endpoint. The returned error carries the provider's stated
// reason on rejection.
func (p *Provider) ValidateCredentials(ctx context.Context) error {
	if err := p.api.Get(ctx, "account", nil); err != nil {
		return domain.WrapOp("validate credentials", err)
	}
	return nil
}

func (p *Provider) cacheRecord(r *entity.Record) {
	zone := p.records[r.Zone]
	if zone == nil {
		zone = make(map[string]*entity.Record)
		p.records[r.Zone] = zone
	}
	zone[r.Key()] = r
}

func (p *Provider) evictRecord(r *entity.Record) {
	if zone := p.records[r.Zone]; zone != nil {
		delete(zone, r.Key())
	}
}

func (p *Provider) cachedRecord(zone, key string) *entity.Record {
	if byKey := p.records[zone]; byKey != nil {
		return byKey[key]
	}
	return nil
}

// page is the provider's list envelope.
type page[T any] struct {
	Data    []T `json:"data"`
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	Results int `json:"results"`
}

// pageSize is the provider's cap on list page length.
const pageSize = 100

func fetchPage[T any](ctx context.Context, c *api.Client, path string, pageNum int) (*page[T], error) {
	var out page[T]
	if err := c.Get(ctx, fmt.Sprintf("%s?page=%d&page_size=%d", path, pageNum, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchAll walks a paginated listing to exhaustion: it stops when the
// reported page count is consumed or a page comes back empty.
func fetchAll[T any](ctx context.Context, c *api.Client, path string) ([]T, error) {
	var all []T
	for pageNum := 1; ; pageNum++ {
		resp, err := fetchPage[T](ctx, c, path, pageNum)
		if err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		all = append(all, resp.Data...)
		if pageNum >= resp.Pages {
			break
		}
	}
	return all, nil
}

// isUnauthorized reports whether the provider rejected the call outright,
// which for record listings means the zone is not hosted by this account.
func isUnauthorized(err error) bool {
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.StatusCode == 401 || reqErr.StatusCode == 403
}
