package linode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lite-lake/infra-dnsbridge/internal/domain"
	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
)

// StaticAuthority is a configuration-backed Authority: a fixed nameserver
// set and a contact mailbox, with a synthesized SOA.
type StaticAuthority struct {
	nameservers []string
	contact     string
}

func NewStaticAuthority(nameservers []string, contact string) *StaticAuthority {
	return &StaticAuthority{nameservers: nameservers, contact: contact}
}

// SOA builds the zone's SOA record in canonical single-line form:
// "mname rname serial refresh retry expire minimum".
func (a *StaticAuthority) SOA(ctx context.Context, zone string) (*entity.Record, error) {
	if len(a.nameservers) == 0 {
		return nil, domain.RequiredField("nameservers")
	}

	mname := strings.TrimSuffix(a.nameservers[0], ".")
	rname := "hostmaster." + zone
	if a.contact != "" {
		rname = strings.Replace(a.contact, "@", ".", 1)
	}
	serial := time.Now().UTC().Format("2006010201")

	parameter := fmt.Sprintf("%s. %s. %s 3600 1800 604800 %d",
		mname, strings.TrimSuffix(rname, "."), serial, soaFallbackTTL)

	return &entity.Record{
		Zone:      zone,
		Type:      entity.RecordTypeSOA,
		Parameter: parameter,
		TTL:       soaFallbackTTL,
	}, nil
}

func (a *StaticAuthority) Nameservers(ctx context.Context, zone string) ([]string, error) {
	if len(a.nameservers) == 0 {
		return nil, domain.RequiredField("nameservers")
	}
	return a.nameservers, nil
}
