// Package utils holds domain-free helpers for query parsing and paging.
package utils

import (
	"cmp"
	"strconv"
	"strings"
)

// AtoiDefault parses a query value, falling back to def when s is blank or
// not an integer.
func AtoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// Clamp bounds v to [lo, hi]. lo wins when lo > hi.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// TotalPages returns how many pages of size pageSize hold total items.
// A non-positive pageSize yields 0.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
