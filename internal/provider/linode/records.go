package linode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
	"github.com/lite-lake/infra-dnsbridge/internal/infrastructure/logger"
	"github.com/lite-lake/infra-dnsbridge/internal/provider/codec"
)

func recordsPath(zoneID int) string {
	return fmt.Sprintf("domains/%d/records", zoneID)
}

func recordPath(zoneID, recordID int) string {
	return fmt.Sprintf("domains/%d/records/%d", zoneID, recordID)
}

func (p *Provider) listRecords(ctx context.Context, zoneID int) ([]codec.Record, error) {
	return fetchAll[codec.Record](ctx, p.api, recordsPath(zoneID))
}

// resolveRecordID determines the provider identifier for a record that
// should already exist remotely: the in-record Meta slot wins, then the
// local cache, then a live listing correlated by name+type+parameter.
// The listing populates the cache as it goes.
func (p *Provider) resolveRecordID(ctx context.Context, zoneID int, r *entity.Record) (int, error) {
	if id := r.ID(); id != "" {
		return strconv.Atoi(id)
	}
	if cached := p.cachedRecord(r.Zone, r.Key()); cached != nil && cached.ID() != "" {
		return strconv.Atoi(cached.ID())
	}

	wires, err := p.listRecords(ctx, zoneID)
	if err != nil {
		return 0, domain.WrapOp("list records", err)
	}
	for i := range wires {
		decoded := codec.Decode(&wires[i], r.Zone)
		p.cacheRecord(decoded)
		if decoded.Key() == r.Key() {
			return wires[i].ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, r)
}

// AddRecord canonicalizes and creates one record. On success the
// provider-assigned identifier lands in the record's Meta and the record
// joins the local cache; on failure the cache is untouched.
func (p *Provider) AddRecord(ctx context.Context, r *entity.Record) error {
	if err := p.canon.Canonicalize(r); err != nil {
		return domain.WrapOp("add record", err)
	}

	zoneID, err := p.zoneID(ctx, r.Zone)
	if err != nil {
		return fmt.Errorf("add record %s: %w", r, err)
	}

	wire, err := codec.Encode(r)
	if err != nil {
		return fmt.Errorf("add record %s: %w", r, err)
	}

	var created codec.Record
	if err := p.api.Post(ctx, recordsPath(zoneID), wire, &created); err != nil {
		return fmt.Errorf("create record %s: %w", r, err)
	}

	if created.ID != 0 {
		r.SetID(strconv.Itoa(created.ID))
	}
	p.cacheRecord(r)
	logger.Debug("record created", "zone", r.Zone, "record", r.String(), "id", r.ID())
	return nil
}

// RemoveRecord canonicalizes and deletes one record. A record whose
// identifier cannot be resolved is a terminal error; no DELETE is issued.
// The cache entry is evicted only after the provider confirms deletion.
func (p *Provider) RemoveRecord(ctx context.Context, r *entity.Record) error {
	if err := p.canon.Canonicalize(r); err != nil {
		return domain.WrapOp("remove record", err)
	}

	zoneID, err := p.zoneID(ctx, r.Zone)
	if err != nil {
		return fmt.Errorf("remove record %s: %w", r, err)
	}

	recordID, err := p.resolveRecordID(ctx, zoneID, r)
	if err != nil {
		return fmt.Errorf("remove record %s: %w", r, err)
	}

	if err := p.api.Delete(ctx, recordPath(zoneID, recordID)); err != nil {
		return fmt.Errorf("delete record %s: %w", r, err)
	}

	p.evictRecord(r)
	logger.Debug("record removed", "zone", r.Zone, "record", r.String())
	return nil
}

// UpdateRecord replaces old with old-patched-by-new in a single remote
// write. new is a sparse patch: fields it leaves unset keep old's values.
// Both operands are canonicalized before any network call, and the cache
// moves from old to merged only after the provider accepts the PUT.
func (p *Provider) UpdateRecord(ctx context.Context, old, patch *entity.Record) error {
	if err := p.canon.Canonicalize(old); err != nil {
		return domain.WrapOp("update record (old)", err)
	}
	if err := p.canon.CanonicalizePatch(patch); err != nil {
		return domain.WrapOp("update record (new)", err)
	}

	zoneID, err := p.zoneID(ctx, old.Zone)
	if err != nil {
		return fmt.Errorf("update record %s: %w", old, err)
	}

	recordID, err := p.resolveRecordID(ctx, zoneID, old)
	if err != nil {
		return fmt.Errorf("cannot locate record to update %s: %w", old, err)
	}

	merged := old.Clone()
	merged.Merge(patch)
	// Re-canonicalize so Meta sub-fields track the merged parameter;
	// encoding reads the merged record, never the raw operands.
	if err := p.canon.Canonicalize(merged); err != nil {
		return domain.WrapOp("update record (merged)", err)
	}

	wire, err := codec.Encode(merged)
	if err != nil {
		return fmt.Errorf("update record %s: %w", old, err)
	}

	if err := p.api.Put(ctx, recordPath(zoneID, recordID), wire, nil); err != nil {
		return fmt.Errorf("update record %s -> %s: %w", old, merged, err)
	}

	merged.SetID(strconv.Itoa(recordID))
	p.evictRecord(old)
	p.cacheRecord(merged)
	logger.Debug("record updated", "zone", old.Zone, "old", old.String(), "new", merged.String())
	return nil
}
