package entity

import (
	"errors"
	"testing"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
)

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{
			name:    "invalid type",
			record:  Record{Zone: "example.com", Name: "www", Type: "SPF", Parameter: "x", TTL: 300},
			wantErr: domain.ErrInvalidType,
		},
		{
			name:    "missing zone",
			record:  Record{Name: "www", Type: RecordTypeA, Parameter: "192.0.2.1", TTL: 300},
			wantErr: domain.ErrRequired,
		},
		{
			name:    "name with spaces",
			record:  Record{Zone: "example.com", Name: "w ww", Type: RecordTypeA, Parameter: "192.0.2.1"},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "negative ttl",
			record:  Record{Zone: "example.com", Name: "www", Type: RecordTypeA, Parameter: "192.0.2.1", TTL: -1},
			wantErr: domain.ErrInvalidTTL,
		},
		{
			name:   "valid type A",
			record: Record{Zone: "example.com", Name: "www", Type: RecordTypeA, Parameter: "192.0.2.1", TTL: 300},
		},
		{
			name:   "valid apex record",
			record: Record{Zone: "example.com", Type: RecordTypeTXT, Parameter: "v=spf1 -all", TTL: 300},
		},
		{
			name:   "valid type ANY",
			record: Record{Zone: "example.com", Type: RecordTypeANY},
		},
		{
			name:    "SOA is not mutable",
			record:  Record{Zone: "example.com", Type: RecordTypeSOA, Parameter: "x"},
			wantErr: domain.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecord_FQDN(t *testing.T) {
	apex := Record{Zone: "example.com", Type: RecordTypeA}
	if got := apex.FQDN(); got != "example.com" {
		t.Errorf("apex FQDN = %q", got)
	}
	sub := Record{Zone: "example.com", Name: "www", Type: RecordTypeA}
	if got := sub.FQDN(); got != "www.example.com" {
		t.Errorf("sub FQDN = %q", got)
	}
}

func TestRecord_Merge_SparsePatch(t *testing.T) {
	old := Record{
		Zone:      "example.com",
		Name:      "www",
		Type:      RecordTypeA,
		Parameter: "203.0.113.5",
		TTL:       3600,
	}
	old.SetID("421")

	t.Run("ttl only patch keeps canonical fields", func(t *testing.T) {
		merged := old.Clone()
		merged.Merge(&Record{TTL: 7200})
		if merged.Name != "www" || merged.Type != RecordTypeA || merged.Parameter != "203.0.113.5" {
			t.Errorf("canonical fields changed: %+v", merged)
		}
		if merged.TTL != 7200 {
			t.Errorf("TTL = %d, want 7200", merged.TTL)
		}
	})

	t.Run("omitted ttl keeps old ttl", func(t *testing.T) {
		merged := old.Clone()
		merged.Merge(&Record{Parameter: "203.0.113.9"})
		if merged.TTL != 3600 {
			t.Errorf("TTL = %d, want 3600", merged.TTL)
		}
		if merged.Parameter != "203.0.113.9" {
			t.Errorf("Parameter = %q", merged.Parameter)
		}
	})

	t.Run("patch never steals the identifier", func(t *testing.T) {
		patch := Record{Parameter: "203.0.113.9"}
		patch.SetID("999")
		merged := old.Clone()
		merged.Merge(&patch)
		if merged.ID() != "421" {
			t.Errorf("ID = %q, want 421", merged.ID())
		}
	})
}

func TestRecord_Clone_Isolated(t *testing.T) {
	r := Record{Zone: "example.com", Name: "www", Type: RecordTypeA, Parameter: "192.0.2.1"}
	r.SetID("7")
	clone := r.Clone()
	clone.SetID("8")
	if r.ID() != "7" {
		t.Errorf("clone mutated original meta: %q", r.ID())
	}
}

func TestRecord_Key(t *testing.T) {
	a := Record{Zone: "example.com", Name: "www", Type: RecordTypeA, Parameter: "192.0.2.1"}
	b := Record{Zone: "example.com", Name: "www", Type: RecordTypeA, Parameter: "192.0.2.2"}
	if a.Key() == b.Key() {
		t.Error("records with different parameters share a key")
	}
	c := a
	c.SetID("55")
	if a.Key() != c.Key() {
		t.Error("meta must not affect the key")
	}
}
