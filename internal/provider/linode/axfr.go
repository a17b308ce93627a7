package linode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
	"github.com/lite-lake/infra-dnsbridge/internal/provider/codec"
)

// axfrLineFormat renders one zone-file line: fqdn, ttl, class, type, rdata.
const axfrLineFormat = "%s.\t%d\t IN\t%s\t%s"

// soaFallbackTTL is used when the SOA parameter carries no minimum field.
const soaFallbackTTL = 1800

// ZoneAXFR synthesizes a zone-file-style rendering of a hosted zone: an
// SOA/NS preamble built from host authority data, then every provider
// record decoded back to canonical text. Fetched records are folded into
// the local record cache so later operations in this process skip the
// re-listing.
//
// A zone the provider does not host, an empty zone, and an unauthorized
// listing all yield "" without an error; any other transport failure is
// returned for the caller to retry.
func (p *Provider) ZoneAXFR(ctx context.Context, zone string) (string, error) {
	zone = strings.TrimSuffix(zone, ".")

	zoneID, err := p.zoneID(ctx, zone)
	if err != nil {
		if errors.Is(err, domain.ErrZoneNotFound) {
			return "", nil
		}
		return "", err
	}

	wires, err := p.listRecords(ctx, zoneID)
	if err != nil {
		if isUnauthorized(err) {
			return "", nil
		}
		return "", fmt.Errorf("list records for %s: %w", zone, err)
	}
	if len(wires) == 0 {
		return "", nil
	}

	preamble, err := p.zonePreamble(ctx, zone)
	if err != nil {
		return "", fmt.Errorf("zone preamble for %s: %w", zone, err)
	}

	lines := preamble
	for i := range wires {
		record := codec.Decode(&wires[i], zone)
		lines = append(lines, fmt.Sprintf(axfrLineFormat, record.FQDN(), record.TTL, record.Type, record.Parameter))
		p.cacheRecord(record)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// zonePreamble builds the SOA line plus one NS line per authoritative
// nameserver. The SOA TTL comes from the 7th whitespace-delimited field of
// the SOA parameter (the minimum).
func (p *Provider) zonePreamble(ctx context.Context, zone string) ([]string, error) {
	if p.authority == nil {
		return nil, errors.New("no authority source configured")
	}

	soa, err := p.authority.SOA(ctx, zone)
	if err != nil {
		return nil, fmt.Errorf("fetch SOA: %w", err)
	}

	ttl := soaFallbackTTL
	if fields := strings.Fields(soa.Parameter); len(fields) >= 7 {
		if parsed, err := strconv.Atoi(fields[6]); err == nil {
			ttl = parsed
		}
	}

	lines := []string{
		fmt.Sprintf(axfrLineFormat, zone, ttl, entity.RecordTypeSOA, soa.Parameter),
	}

	nameservers, err := p.authority.Nameservers(ctx, zone)
	if err != nil {
		return nil, fmt.Errorf("fetch nameservers: %w", err)
	}
	for _, ns := range nameservers {
		if !strings.HasSuffix(ns, ".") {
			ns += "."
		}
		lines = append(lines, fmt.Sprintf(axfrLineFormat, zone, ttl, entity.RecordTypeNS, ns))
	}
	return lines, nil
}
