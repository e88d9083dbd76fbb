package render

import "testing"

func TestSortStateCycle(t *testing.T) {
	var s SortState

	s = s.Next("title")
	if s.Column != "title" || s.Direction != SortAsc {
		t.Fatalf("first activation should sort ascending, got %+v", s)
	}

	s = s.Next("title")
	if s.Direction != SortDesc {
		t.Fatalf("second activation should sort descending, got %+v", s)
	}

	s = s.Next("title")
	if s.Column != "" || s.Direction != SortNone {
		t.Fatalf("third activation should clear sorting, got %+v", s)
	}
}

func TestSortStateSwitchingColumnsRestartsAscending(t *testing.T) {
	s := SortState{Column: "title", Direction: SortDesc}
	s = s.Next("views")
	if s.Column != "views" || s.Direction != SortAsc {
		t.Fatalf("switching columns should restart ascending, got %+v", s)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input   string
		want    SortState
		wantErr bool
	}{
		{input: "", want: SortState{}},
		{input: "title", want: SortState{Column: "title", Direction: SortAsc}},
		{input: "title:asc", want: SortState{Column: "title", Direction: SortAsc}},
		{input: "views:desc", want: SortState{Column: "views", Direction: SortDesc}},
		{input: "views:sideways", wantErr: true},
		{input: ":asc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSort(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSort(%q) expected error, got %+v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSort(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSort(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestCompareValues(t *testing.T) {
	if compareValues("5", "40") >= 0 {
		t.Errorf("Expected numeric comparison: 5 < 40")
	}
	if compareValues("beta", "alpha") <= 0 {
		t.Errorf("Expected lexical comparison: beta > alpha")
	}
	if compareValues("10", "ten") >= 0 {
		t.Errorf("Expected lexical fallback for mixed values: \"10\" < \"ten\"")
	}
}
