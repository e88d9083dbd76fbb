package main

import (
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func formatStringPtr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatIntPtr(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatKeywords(words []string) string {
	if len(words) == 0 {
		return "-"
	}
	return strings.Join(words, ", ")
}

func formatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}
