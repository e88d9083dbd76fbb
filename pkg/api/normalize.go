package api

import "bytes"

// The ingestion backend predates a cleanup of its persistence layer and some
// endpoints still leak nullable database columns in their wire form: an object
// of exactly {"String": "...", "Valid": true} or {"Time": "...", "Valid": true}
// where a plain string (or null) belongs. Payloads are normalized structurally
// before the typed decode so models never need to know about the wrapper.

// needsNormalization is a cheap pre-check: wrapper objects always serialize a
// "Valid" key, so bodies without that byte sequence are decoded directly.
func needsNormalization(body []byte) bool {
	return bytes.Contains(body, []byte(`"Valid"`))
}

// normalizeLegacyNulls walks a decoded JSON tree and collapses legacy null
// wrapper objects into plain values: Valid=false becomes nil, Valid=true
// becomes the inner String or Time value. Objects that merely resemble a
// wrapper (extra keys, wrong member types) pass through untouched. The input
// is never modified; containers are rebuilt.
func normalizeLegacyNulls(v any) any {
	switch node := v.(type) {
	case map[string]any:
		if collapsed, ok := collapseNullWrapper(node); ok {
			return collapsed
		}
		out := make(map[string]any, len(node))
		for key, val := range node {
			out[key] = normalizeLegacyNulls(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = normalizeLegacyNulls(val)
		}
		return out
	default:
		return v
	}
}

// collapseNullWrapper reports whether node is exactly a legacy null wrapper
// and, if so, returns its collapsed value. The shape must match precisely:
// two keys, a boolean "Valid", and a string-typed "String" or "Time".
func collapseNullWrapper(node map[string]any) (any, bool) {
	if len(node) != 2 {
		return nil, false
	}
	valid, ok := node["Valid"].(bool)
	if !ok {
		return nil, false
	}
	for _, inner := range []string{"String", "Time"} {
		raw, present := node[inner]
		if !present {
			continue
		}
		value, isString := raw.(string)
		if !isString {
			return nil, false
		}
		if !valid {
			return nil, true
		}
		return value, true
	}
	return nil, false
}
