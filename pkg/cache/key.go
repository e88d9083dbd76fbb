package cache

import (
	"crypto/sha256"
	"fmt"

	json "github.com/goccy/go-json"
)

// Key builds the cache key for a resource and its query parameters. The
// parameters are serialized and hashed, so any difference in filters,
// ordering, or pagination yields a distinct key.
func Key(resource string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", resource, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", resource, hash[:16])
}
