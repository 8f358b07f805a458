package ndl

import (
	"context"

	"bookjan/internal/cache"
	bkerrors "bookjan/internal/errors"
)

// cachedLookup is the cache payload for one ISBN. "Not found" responses
// are cached too, with a shorter TTL, so repeated scans of the same
// unresolvable file do not hammer the catalog.
type cachedLookup struct {
	Record   Record `json:"record,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
}

// FetchRecordCached retrieves catalog metadata for an ISBN through the
// SQLite lookup cache. Transport errors are never cached.
func FetchRecordCached(ctx context.Context, isbn string) (Record, error) {
	result, _, err := cache.GetOrFetchWithTTL("ndl_cache", isbn,
		func() (cachedLookup, error) {
			record, err := FetchRecordWithContext(ctx, isbn)
			if err != nil {
				if bkerrors.IsLookupNotFound(err) {
					return cachedLookup{NotFound: true}, nil
				}
				return cachedLookup{}, err
			}
			return cachedLookup{Record: record}, nil
		},
		cache.SelectNegativeCacheTTL(func(r cachedLookup) bool {
			return r.NotFound
		}))
	if err != nil {
		return nil, err
	}
	if result.NotFound {
		return nil, bkerrors.NewLookupNotFoundError(isbn)
	}
	return result.Record, nil
}
