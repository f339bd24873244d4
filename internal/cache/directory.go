package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
)

const defaultDirectoryTTL = 5 * time.Minute

// Config tunes directory caching.
type Config struct {
	DirectoryTTL time.Duration `mapstructure:"directory_ttl"`
}

// Directory wraps a dependency.Directory with a read-through TTL cache. The
// directories change rarely next to how often reports read them, so repeated
// reports over the same staff set skip two table scans. Any upsert through
// this wrapper drops the affected table's entries.
type Directory struct {
	inner dependency.Directory
	staff *TTL[[]entity.IdentityRecord]
	crm   *TTL[[]entity.IdentityRecord]
}

// NewDirectory wraps inner with caching. A zero or negative TTL in cfg falls
// back to the default.
func NewDirectory(inner dependency.Directory, cfg *Config) *Directory {
	ttl := defaultDirectoryTTL
	if cfg != nil && cfg.DirectoryTTL > 0 {
		ttl = cfg.DirectoryTTL
	}
	return &Directory{
		inner: inner,
		staff: New[[]entity.IdentityRecord](ttl),
		crm:   New[[]entity.IdentityRecord](ttl),
	}
}

func (d *Directory) GetStaffDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error) {
	return d.get(ctx, d.staff, d.inner.GetStaffDirectory, names, emails)
}

func (d *Directory) GetCrmDirectory(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error) {
	return d.get(ctx, d.crm, d.inner.GetCrmDirectory, names, emails)
}

func (d *Directory) UpsertStaffDirectory(ctx context.Context, recs []entity.IdentityRecord) error {
	if err := d.inner.UpsertStaffDirectory(ctx, recs); err != nil {
		return err
	}
	d.staff.Clear()
	return nil
}

func (d *Directory) UpsertCrmDirectory(ctx context.Context, recs []entity.IdentityRecord) error {
	if err := d.inner.UpsertCrmDirectory(ctx, recs); err != nil {
		return err
	}
	d.crm.Clear()
	return nil
}

type directoryRead func(ctx context.Context, names, emails []string) ([]entity.IdentityRecord, error)

func (d *Directory) get(ctx context.Context, c *TTL[[]entity.IdentityRecord], read directoryRead, names, emails []string) ([]entity.IdentityRecord, error) {
	key := requestKey(names, emails)
	if recs, ok := c.Get(key); ok {
		return recs, nil
	}
	recs, err := read(ctx, names, emails)
	if err != nil {
		return nil, err
	}
	c.Set(key, recs)
	return recs, nil
}

// requestKey derives a cache key from the identity filter. Order of the
// incoming slices must not matter, so both are sorted on a copy first.
func requestKey(names, emails []string) string {
	n := append([]string(nil), names...)
	e := append([]string(nil), emails...)
	sort.Strings(n)
	sort.Strings(e)
	return strings.Join(n, "\x00") + "\x01" + strings.Join(e, "\x00")
}
