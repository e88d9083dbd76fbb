package render

import "fmt"

// PageInfo describes one page of a larger result set, in the same terms the
// list endpoints use: total matching items, page size, zero-based offset.
type PageInfo struct {
	Total  int
	Limit  int
	Offset int
}

// Start returns the one-based index of the first item on the page.
func (p PageInfo) Start() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset + 1
}

// End returns the one-based index of the last item on the page.
func (p PageInfo) End() int {
	if p.Limit <= 0 {
		return p.Total
	}
	end := p.Offset + p.Limit
	if end > p.Total {
		end = p.Total
	}
	return end
}

// Page returns the one-based page number.
func (p PageInfo) Page() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// Pages returns the total number of pages.
func (p PageInfo) Pages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// Footer renders the pagination line for a resource. Results that fit on a
// single page render nothing.
func (p PageInfo) Footer(resource string) string {
	if p.Limit <= 0 || p.Total <= p.Limit {
		return ""
	}
	return fmt.Sprintf("Showing %d to %d of %d %s (page %d of %d)",
		p.Start(), p.End(), p.Total, resource, p.Page(), p.Pages())
}
