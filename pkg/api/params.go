package api

import (
	"net/url"
	"strconv"
	"time"
)

// List is the envelope every list endpoint responds with.
type List[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListParams carries the pagination and ordering fields shared by every list
// endpoint. A zero Limit means server-side default paging and suppresses both
// paging parameters.
type ListParams struct {
	Limit   int
	Offset  int
	OrderBy string
	Order   string
}

func (p ListParams) values() url.Values {
	query := url.Values{}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
		query.Set("offset", strconv.Itoa(p.Offset))
	}
	setString(query, "order_by", p.OrderBy)
	setString(query, "order", p.Order)
	return query
}

// setString adds a query parameter, omitting empty values entirely rather
// than serializing them as blank.
func setString(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

// setBool adds a query parameter for an optional boolean; nil is omitted.
func setBool(query url.Values, key string, value *bool) {
	if value != nil {
		query.Set(key, strconv.FormatBool(*value))
	}
}

// setTime adds a query parameter for an optional timestamp; nil and zero
// times are omitted.
func setTime(query url.Values, key string, value *time.Time) {
	if value != nil && !value.IsZero() {
		query.Set(key, value.UTC().Format(time.RFC3339))
	}
}
