package api

import (
	"reflect"
	"testing"
)

func TestNormalizeCollapsesStringWrapper(t *testing.T) {
	got := normalizeLegacyNulls(map[string]any{"String": "x", "Valid": true})
	if got != "x" {
		t.Errorf("Expected \"x\", got %#v", got)
	}

	got = normalizeLegacyNulls(map[string]any{"String": "", "Valid": false})
	if got != nil {
		t.Errorf("Expected nil for an invalid wrapper, got %#v", got)
	}
}

func TestNormalizeCollapsesTimeWrapper(t *testing.T) {
	got := normalizeLegacyNulls(map[string]any{"Time": "2026-01-02T03:04:05Z", "Valid": true})
	if got != "2026-01-02T03:04:05Z" {
		t.Errorf("Expected the inner timestamp, got %#v", got)
	}

	got = normalizeLegacyNulls(map[string]any{"Time": "0001-01-01T00:00:00Z", "Valid": false})
	if got != nil {
		t.Errorf("Expected nil for an invalid wrapper, got %#v", got)
	}
}

func TestNormalizeIgnoresNearMisses(t *testing.T) {
	cases := []map[string]any{
		// Extra key: not a wrapper.
		{"String": "x", "Valid": true, "Extra": 1},
		// Valid is not a bool.
		{"String": "x", "Valid": "yes"},
		// Inner value is not a string.
		{"String": 3.0, "Valid": true},
		// No inner member at all.
		{"Name": "x", "Valid": true},
		// Only one key.
		{"Valid": true},
	}

	for _, input := range cases {
		got := normalizeLegacyNulls(input)
		m, ok := got.(map[string]any)
		if !ok {
			t.Errorf("Near-miss %#v collapsed to %#v", input, got)
			continue
		}
		if !reflect.DeepEqual(m, input) {
			t.Errorf("Near-miss %#v was altered to %#v", input, m)
		}
	}
}

func TestNormalizeRecursesIntoContainers(t *testing.T) {
	input := map[string]any{
		"id": 1.0,
		"meta": map[string]any{
			"created_by": map[string]any{"String": "admin", "Valid": true},
			"deleted_at": map[string]any{"Time": "", "Valid": false},
		},
		"tags": []any{
			"plain",
			map[string]any{"String": "wrapped", "Valid": true},
		},
	}

	want := map[string]any{
		"id": 1.0,
		"meta": map[string]any{
			"created_by": "admin",
			"deleted_at": nil,
		},
		"tags": []any{"plain", "wrapped"},
	}

	got := normalizeLegacyNulls(input)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalized tree mismatch:\n got %#v\nwant %#v", got, want)
	}

	// The input tree itself must stay untouched.
	if input["meta"].(map[string]any)["created_by"].(map[string]any)["String"] != "admin" {
		t.Error("Normalization mutated its input")
	}
}

func TestNormalizeScalarsPassThrough(t *testing.T) {
	for _, input := range []any{nil, "a", 1.5, true} {
		if got := normalizeLegacyNulls(input); got != input {
			t.Errorf("Scalar %#v changed to %#v", input, got)
		}
	}
}

func TestNeedsNormalization(t *testing.T) {
	if !needsNormalization([]byte(`{"created_by":{"String":"x","Valid":true}}`)) {
		t.Error("Body with a wrapper should need normalization")
	}
	if needsNormalization([]byte(`{"created_by":"x"}`)) {
		t.Error("Body without a wrapper should skip normalization")
	}
}
