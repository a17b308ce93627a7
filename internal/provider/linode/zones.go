package linode

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/retry"
	"github.com/lite-lake/infra-dnsbridge/internal/infrastructure/logger"
)

// zoneEntry is the wire shape of one domain in the zone listing.
type zoneEntry struct {
	ID       int    `json:"id"`
	Domain   string `json:"domain"`
	Status   string `json:"status"`
	Type     string `json:"type,omitempty"`
	SOAEmail string `json:"soa_email,omitempty"`
}

// populateZones loads every zone owned by the credential into the metadata
// cache, page by page. Entries merge in; nothing is evicted until process
// end. Nothing partial is treated as final: an error aborts without
// marking the cache populated.
func (p *Provider) populateZones(ctx context.Context) error {
	entries, err := fetchAll[zoneEntry](ctx, p.api, "domains")
	if err != nil {
		return domain.WrapOp("list zones", err)
	}
	for _, e := range entries {
		p.zones[e.Domain] = entity.ZoneMeta{
			ID:     e.ID,
			Domain: e.Domain,
			Status: e.Status,
		}
	}
	p.zonesLoaded = true
	return nil
}

// zoneID resolves a domain to its provider-assigned identifier, lazily
// populating the metadata cache on first use. A zone absent after full
// population yields ErrZoneNotFound.
func (p *Provider) zoneID(ctx context.Context, zone string) (int, error) {
	if meta, ok := p.zones[zone]; ok {
		return meta.ID, nil
	}
	if !p.zonesLoaded {
		if err := p.populateZones(ctx); err != nil {
			return 0, err
		}
		if meta, ok := p.zones[zone]; ok {
			return meta.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrZoneNotFound, zone)
}

// Zones returns the cached zone metadata, populating it if needed.
func (p *Provider) Zones(ctx context.Context) ([]entity.ZoneMeta, error) {
	if !p.zonesLoaded {
		if err := p.populateZones(ctx); err != nil {
			return nil, err
		}
	}
	out := make([]entity.ZoneMeta, 0, len(p.zones))
	for _, meta := range p.zones {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out, nil
}

// CreateZone requests a master zone and waits, within the configured
// bounds, for the provider to report authority over it. Authority not
// showing up in time is a warning, not a failure: the zone was created.
func (p *Provider) CreateZone(ctx context.Context, zone, soaEmail string) error {
	zone = strings.TrimSuffix(zone, ".")
	body := map[string]any{
		"domain":    zone,
		"type":      "master",
		"soa_email": soaEmail,
	}
	if err := p.api.Post(ctx, "domains", body, nil); err != nil {
		return fmt.Errorf("create zone %s: %w", zone, err)
	}

	err := retry.Do(ctx, func() error {
		p.zonesLoaded = false
		_, err := p.zoneID(ctx, zone)
		return err
	},
		retry.WithMaxAttempts(p.pollAttempts),
		retry.WithDelay(p.pollInterval),
		retry.WithMultiplier(1.0),
		retry.WithIsRetryable(func(err error) bool {
			return errors.Is(err, domain.ErrZoneNotFound)
		}),
	)
	if err != nil {
		logger.Warn("zone created but authority not observed yet",
			"zone", zone, "attempts", p.pollAttempts)
	}
	return nil
}

// RemoveZone deletes a zone. A zone the provider does not know about is
// not an error: there is nothing left to remove.
func (p *Provider) RemoveZone(ctx context.Context, zone string) error {
	zone = strings.TrimSuffix(zone, ".")
	id, err := p.zoneID(ctx, zone)
	if err != nil {
		if errors.Is(err, domain.ErrZoneNotFound) {
			logger.Warn("zone not present at provider, nothing to remove", "zone", zone)
			return nil
		}
		return err
	}

	if err := p.api.Delete(ctx, fmt.Sprintf("domains/%d", id)); err != nil {
		return fmt.Errorf("remove zone %s: %w", zone, err)
	}

	delete(p.zones, zone)
	delete(p.records, zone)
	return nil
}
