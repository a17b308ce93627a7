package entity

import "github.com/lite-lake/infra-dnsbridge/internal/domain"

// ZoneMeta is one cached entry of provider zone attributes, keyed by the
// zone's domain name. Entries are merged monotonically into the cache and
// live for the life of the process.
type ZoneMeta struct {
	ID     int
	Domain string
	Status string
}

func (z *ZoneMeta) Validate() error {
	if z.Domain == "" {
		return domain.RequiredField("domain")
	}
	if z.ID == 0 {
		return domain.RequiredField("id")
	}
	return nil
}
