package entity

import (
	"fmt"
	"strings"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
)

// DefaultTTL is the provider default applied when a record is created
// without an explicit TTL.
const DefaultTTL = 1800

type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCAA   RecordType = "CAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
	RecordTypePTR   RecordType = "PTR"
	RecordTypeSRV   RecordType = "SRV"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeANY   RecordType = "ANY"

	// RecordTypeSOA appears only in synthesized zone text; the provider
	// manages the SOA itself and it is not in the permitted mutation set.
	RecordTypeSOA RecordType = "SOA"
)

// PermittedTypes is the record-type surface the provider accepts. Anything
// outside this set is rejected before a network call is made.
var PermittedTypes = map[RecordType]bool{
	RecordTypeA:     true,
	RecordTypeAAAA:  true,
	RecordTypeCAA:   true,
	RecordTypeCNAME: true,
	RecordTypeMX:    true,
	RecordTypeNS:    true,
	RecordTypePTR:   true,
	RecordTypeSRV:   true,
	RecordTypeTXT:   true,
	RecordTypeANY:   true,
}

// Well-known Meta keys. MetaID holds the provider-assigned record
// identifier; the remaining keys hold sub-fields decomposed from Parameter
// for types whose wire format wants them individually.
const (
	MetaID       = "id"
	MetaData     = "data"
	MetaPriority = "priority"
	MetaWeight   = "weight"
	MetaPort     = "port"
	MetaService  = "service"
	MetaProtocol = "protocol"
	MetaTag      = "tag"
	MetaFlags    = "flags"
)

// Record is the canonical, provider-independent form of one DNS resource
// record. Name is relative to Zone; an empty Name addresses the apex.
type Record struct {
	Zone      string
	Name      string
	Type      RecordType
	Parameter string
	TTL       int
	Meta      map[string]string
}

func (r *Record) Validate() error {
	if r.Zone == "" {
		return domain.RequiredField("zone")
	}
	if !PermittedTypes[r.Type] {
		return fmt.Errorf("%w: %s", domain.ErrInvalidType, r.Type)
	}
	if strings.ContainsAny(r.Name, " \t") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, r.Name)
	}
	if r.TTL < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidTTL, r.TTL)
	}
	return nil
}

// Key identifies a record within its zone by canonical fields. Two records
// with equal keys describe the same remote resource.
func (r *Record) Key() string {
	return r.Name + "|" + string(r.Type) + "|" + r.Parameter
}

// FQDN returns the fully qualified name without a trailing dot.
func (r *Record) FQDN() string {
	if r.Name == "" {
		return r.Zone
	}
	return r.Name + "." + r.Zone
}

// ID returns the provider-assigned identifier stored in Meta, or empty.
func (r *Record) ID() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta[MetaID]
}

func (r *Record) SetID(id string) {
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}
	r.Meta[MetaID] = id
}

func (r *Record) Clone() *Record {
	out := *r
	if r.Meta != nil {
		out.Meta = make(map[string]string, len(r.Meta))
		for k, v := range r.Meta {
			out.Meta[k] = v
		}
	}
	return &out
}

// Merge applies the set fields of patch onto r. Zero values in patch mean
// "keep the current value": this is a sparse patch, not a replace. Meta
// entries from patch override, except the provider identifier, which is
// never taken from a patch.
func (r *Record) Merge(patch *Record) {
	if patch.Name != "" {
		r.Name = patch.Name
	}
	if patch.Type != "" {
		r.Type = patch.Type
	}
	if patch.Parameter != "" {
		r.Parameter = patch.Parameter
	}
	if patch.TTL != 0 {
		r.TTL = patch.TTL
	}
	for k, v := range patch.Meta {
		if k == MetaID {
			continue
		}
		if r.Meta == nil {
			r.Meta = make(map[string]string)
		}
		r.Meta[k] = v
	}
}

func (r *Record) String() string {
	return fmt.Sprintf("%s %s %q", r.FQDN(), r.Type, r.Parameter)
}
