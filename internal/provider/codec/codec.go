// Package codec translates between canonical records and the provider's
// per-type wire schema. Encoding is used for create/update bodies; decoding
// inverts the rules to rebuild a single-line parameter for zone synthesis.
//
// CAA note: the current API version takes the tag as its own field, never
// transmits flags (the server defaults them to 0), and wants the target
// with surrounding double quotes stripped. An earlier API version instead
// folded "<tag> <target>" into the target field; that legacy form is a
// breaking assumption of old deployments and is deliberately not emitted.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
)

// Record is the provider's wire layout. Field presence varies by record
// type; omitempty keeps unset fields off the request body.
type Record struct {
	ID       int    `json:"id,omitempty"`
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Target   string `json:"target,omitempty"`
	TTLSec   int    `json:"ttl_sec,omitempty"`
	Priority *int   `json:"priority,omitempty"`
	Weight   *int   `json:"weight,omitempty"`
	Port     *int   `json:"port,omitempty"`
	Service  string `json:"service,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Flags    *int   `json:"flags,omitempty"`
}

// Encode renders a canonical record into the provider's field layout for
// its type. The record must already be canonicalized; an unknown type is a
// programming-invariant violation surfaced as ErrUnsupportedType.
func Encode(r *entity.Record) (*Record, error) {
	switch r.Type {
	case entity.RecordTypeA, entity.RecordTypeAAAA, entity.RecordTypeCNAME,
		entity.RecordTypeTXT, entity.RecordTypeNS, entity.RecordTypePTR:
		return &Record{
			Type:   string(r.Type),
			TTLSec: r.TTL,
			Name:   r.Name,
			Target: r.Parameter,
		}, nil
	case entity.RecordTypeMX:
		priority, err := metaInt(r, entity.MetaPriority)
		if err != nil {
			return nil, err
		}
		return &Record{
			Type:     string(r.Type),
			TTLSec:   r.TTL,
			Name:     r.Name,
			Priority: &priority,
			Target:   r.Meta[entity.MetaData],
		}, nil
	case entity.RecordTypeSRV:
		priority, err := metaInt(r, entity.MetaPriority)
		if err != nil {
			return nil, err
		}
		weight, err := metaInt(r, entity.MetaWeight)
		if err != nil {
			return nil, err
		}
		port, err := metaInt(r, entity.MetaPort)
		if err != nil {
			return nil, err
		}
		// The provider synthesizes the SRV owner name from
		// service+protocol; no name field is sent.
		return &Record{
			Type:     string(r.Type),
			TTLSec:   r.TTL,
			Service:  r.Meta[entity.MetaService],
			Protocol: strings.TrimPrefix(r.Meta[entity.MetaProtocol], "_"),
			Target:   r.Meta[entity.MetaData],
			Priority: &priority,
			Weight:   &weight,
			Port:     &port,
		}, nil
	case entity.RecordTypeCAA:
		return &Record{
			Type:   string(r.Type),
			TTLSec: r.TTL,
			Name:   r.Name,
			Tag:    r.Meta[entity.MetaTag],
			Target: strings.Trim(r.Meta[entity.MetaData], `"`),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, r.Type)
}

// Decode rebuilds a canonical record from a provider record, inverting the
// per-type encoding into a single-line parameter.
func Decode(w *Record, zone string) *entity.Record {
	r := &entity.Record{
		Zone: zone,
		Name: w.Name,
		Type: entity.RecordType(w.Type),
		TTL:  w.TTLSec,
	}
	if w.ID != 0 {
		r.SetID(strconv.Itoa(w.ID))
	}

	switch r.Type {
	case entity.RecordTypeCAA:
		// Flags are absent from current-API payloads; default 0.
		flags := "0"
		if w.Flags != nil {
			flags = strconv.Itoa(*w.Flags)
		}
		r.Parameter = fmt.Sprintf("%s %s %s", w.Tag, flags, w.Target)
	case entity.RecordTypeSRV:
		r.Parameter = fmt.Sprintf("%d %d %d %s", intValue(w.Priority), intValue(w.Weight), intValue(w.Port), w.Target)
	case entity.RecordTypeMX:
		r.Parameter = fmt.Sprintf("%d %s", intValue(w.Priority), w.Target)
	default:
		r.Parameter = w.Target
	}
	return r
}

func metaInt(r *entity.Record, key string) (int, error) {
	v, err := strconv.Atoi(r.Meta[key])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s %q", domain.ErrInvalidParameter, r.Type, key, r.Meta[key])
	}
	return v, nil
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
