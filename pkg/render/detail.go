package render

import (
	"context"
	"sync"
)

// DetailCache memoizes per-row detail content by row id for the lifetime of
// a page view, including across watch refreshes. A row's detail is fetched
// once; a failed fetch degrades that row to an empty detail instead of
// failing the page, and is not retried.
type DetailCache struct {
	mu      sync.Mutex
	details map[string]string
}

func NewDetailCache() *DetailCache {
	return &DetailCache{details: make(map[string]string)}
}

// Get returns the memoized detail for id, fetching it on first use.
func (d *DetailCache) Get(ctx context.Context, id string, fetch func(context.Context) (string, error)) string {
	d.mu.Lock()
	if detail, ok := d.details[id]; ok {
		d.mu.Unlock()
		return detail
	}
	d.mu.Unlock()

	detail, err := fetch(ctx)
	if err != nil {
		detail = ""
	}

	d.mu.Lock()
	d.details[id] = detail
	d.mu.Unlock()
	return detail
}

// Len reports how many rows have memoized details.
func (d *DetailCache) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.details)
}
