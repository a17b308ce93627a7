package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// withZoneLock serializes zone-mutating commands across processes. The
// reconciliation engine itself is single-threaded and unlocked; the CLI is
// the caller responsible for making sure two invocations never mutate the
// same zone at once.
func withZoneLock(zone string, fn func() error) error {
	name := strings.ReplaceAll(strings.TrimSuffix(zone, "."), "/", "_")
	lock := flock.New(filepath.Join(os.TempDir(), fmt.Sprintf("dnsbridge-%s.lock", name)))

	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring zone lock for %s: %w", zone, err)
	}
	defer lock.Unlock()

	return fn()
}
