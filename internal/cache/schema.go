package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// NDLCacheSchema defines the schema for the NDL OpenSearch lookup cache.
// Negative ("not found") entries carry a shorter expires_at than hits.
const NDLCacheSchema = `
CREATE TABLE IF NOT EXISTS ndl_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ndl_expires_at ON ndl_cache(expires_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	NDLCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"ndl_cache": true,
}
