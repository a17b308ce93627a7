// Package service holds the record canonicalizer: the normalization step
// every record passes through before it is allowed anywhere near the
// provider API.
package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
)

type Canonicalizer struct {
	defaultTTL int
}

func NewCanonicalizer(defaultTTL int) *Canonicalizer {
	if defaultTTL <= 0 {
		defaultTTL = entity.DefaultTTL
	}
	return &Canonicalizer{defaultTTL: defaultTTL}
}

// Canonicalize normalizes a full record in place: trims dots, uppercases
// the type, applies the default TTL, validates against the permitted type
// set, and decomposes Parameter into the per-type Meta sub-fields the wire
// codec consumes. A failure here aborts the calling operation before any
// network effect.
func (c *Canonicalizer) Canonicalize(r *entity.Record) error {
	c.normalize(r)

	if r.TTL == 0 {
		r.TTL = c.defaultTTL
	}

	if err := r.Validate(); err != nil {
		return err
	}

	return c.decompose(r)
}

// CanonicalizePatch normalizes a sparse patch record. Unset fields stay
// unset so a later merge keeps the original record's values; in particular
// a zero TTL is not defaulted.
func (c *Canonicalizer) CanonicalizePatch(r *entity.Record) error {
	c.normalize(r)

	if r.Type != "" && !entity.PermittedTypes[r.Type] {
		return fmt.Errorf("%w: %s", domain.ErrInvalidType, r.Type)
	}
	if strings.ContainsAny(r.Name, " \t") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, r.Name)
	}
	if r.TTL < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidTTL, r.TTL)
	}

	if r.Parameter == "" || r.Type == "" {
		return nil
	}
	return c.decompose(r)
}

func (c *Canonicalizer) normalize(r *entity.Record) {
	r.Zone = strings.TrimSuffix(strings.TrimSpace(r.Zone), ".")
	r.Type = entity.RecordType(strings.ToUpper(strings.TrimSpace(string(r.Type))))
	r.Name = strings.TrimSpace(r.Name)
	r.Name = strings.TrimSuffix(r.Name, ".")
	r.Name = strings.TrimSuffix(r.Name, "."+r.Zone)
	if r.Name == "@" {
		r.Name = ""
	}
	r.Parameter = strings.TrimSpace(r.Parameter)
}

func (c *Canonicalizer) decompose(r *entity.Record) error {
	switch r.Type {
	case entity.RecordTypeMX:
		priority, target, err := splitPriority(r.Parameter)
		if err != nil {
			return fmt.Errorf("%w: MX parameter %q", domain.ErrInvalidParameter, r.Parameter)
		}
		setMeta(r, entity.MetaPriority, strconv.Itoa(priority))
		setMeta(r, entity.MetaData, target)
	case entity.RecordTypeSRV:
		fields := strings.Fields(r.Parameter)
		if len(fields) != 4 {
			return fmt.Errorf("%w: SRV parameter %q wants \"priority weight port target\"", domain.ErrInvalidParameter, r.Parameter)
		}
		for i, key := range []string{entity.MetaPriority, entity.MetaWeight, entity.MetaPort} {
			if _, err := strconv.Atoi(fields[i]); err != nil {
				return fmt.Errorf("%w: SRV %s %q", domain.ErrInvalidParameter, key, fields[i])
			}
			setMeta(r, key, fields[i])
		}
		setMeta(r, entity.MetaData, fields[3])
		if err := decomposeSRVName(r); err != nil {
			return err
		}
	case entity.RecordTypeCAA:
		fields := strings.Fields(r.Parameter)
		if len(fields) != 3 {
			return fmt.Errorf("%w: CAA parameter %q wants \"tag flags target\"", domain.ErrInvalidParameter, r.Parameter)
		}
		if _, err := strconv.Atoi(fields[1]); err != nil {
			return fmt.Errorf("%w: CAA flags %q", domain.ErrInvalidParameter, fields[1])
		}
		setMeta(r, entity.MetaTag, fields[0])
		setMeta(r, entity.MetaFlags, fields[1])
		setMeta(r, entity.MetaData, fields[2])
	}
	return nil
}

// decomposeSRVName splits an "_service._protocol" name into the service
// (underscore stripped) and protocol (underscore kept) Meta slots. The
// provider synthesizes the SRV owner name from these two fields.
func decomposeSRVName(r *entity.Record) error {
	labels := strings.SplitN(r.Name, ".", 3)
	if len(labels) < 2 || !strings.HasPrefix(labels[0], "_") || !strings.HasPrefix(labels[1], "_") {
		return fmt.Errorf("%w: SRV name %q wants \"_service._protocol\"", domain.ErrInvalidName, r.Name)
	}
	setMeta(r, entity.MetaService, strings.TrimPrefix(labels[0], "_"))
	setMeta(r, entity.MetaProtocol, labels[1])
	return nil
}

func splitPriority(parameter string) (int, string, error) {
	fields := strings.Fields(parameter)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("want \"priority target\", got %q", parameter)
	}
	priority, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", err
	}
	return priority, fields[1], nil
}

func setMeta(r *entity.Record, key, value string) {
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}
	r.Meta[key] = value
}
