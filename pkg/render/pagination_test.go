package render

import "testing"

func TestPageInfoRange(t *testing.T) {
	tests := []struct {
		name   string
		page   PageInfo
		start  int
		end    int
		number int
		pages  int
	}{
		{
			name:   "last partial page",
			page:   PageInfo{Total: 95, Limit: 20, Offset: 80},
			start:  81,
			end:    95,
			number: 5,
			pages:  5,
		},
		{
			name:   "first page",
			page:   PageInfo{Total: 95, Limit: 20, Offset: 0},
			start:  1,
			end:    20,
			number: 1,
			pages:  5,
		},
		{
			name:   "exact fit",
			page:   PageInfo{Total: 40, Limit: 20, Offset: 20},
			start:  21,
			end:    40,
			number: 2,
			pages:  2,
		},
		{
			name:   "empty result",
			page:   PageInfo{Total: 0, Limit: 20, Offset: 0},
			start:  0,
			end:    0,
			number: 1,
			pages:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Start(); got != tt.start {
				t.Errorf("Start() = %d, want %d", got, tt.start)
			}
			if got := tt.page.End(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
			if got := tt.page.Page(); got != tt.number {
				t.Errorf("Page() = %d, want %d", got, tt.number)
			}
			if got := tt.page.Pages(); got != tt.pages {
				t.Errorf("Pages() = %d, want %d", got, tt.pages)
			}
		})
	}
}

func TestPageInfoFooter(t *testing.T) {
	page := PageInfo{Total: 95, Limit: 20, Offset: 80}
	got := page.Footer("videos")
	want := "Showing 81 to 95 of 95 videos (page 5 of 5)"
	if got != want {
		t.Errorf("Footer() = %q, want %q", got, want)
	}
}

func TestPageInfoFooterSuppressedWhenSinglePage(t *testing.T) {
	cases := []PageInfo{
		{Total: 3, Limit: 20, Offset: 0},
		{Total: 20, Limit: 20, Offset: 0},
		{Total: 0, Limit: 20, Offset: 0},
		{Total: 5, Limit: 0, Offset: 0},
	}
	for _, page := range cases {
		if got := page.Footer("videos"); got != "" {
			t.Errorf("Footer() for %+v = %q, want empty", page, got)
		}
	}
}
