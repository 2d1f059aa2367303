// Package pagination turns page/limit query parameters into slice bounds.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// MaxLimit caps the page size for every paginated listing.
const MaxLimit = 100

// Params is a 1-based page request with the effective limit.
type Params struct {
	Page  int
	Limit int
}

// Page is one window over an ordered sequence.
type Page[T any] struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Items []T `json:"items"`
}

// New clamps page to >= 1 and limit to [1, MaxLimit].
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// FromQuery reads "page" and "limit". Missing or non-numeric values fall
// back to page 1 and defaultLimit before clamping.
func FromQuery(q url.Values, defaultLimit int) Params {
	return New(intParam(q, "page", 1), intParam(q, "limit", defaultLimit))
}

// Slice returns the window of items described by p. Pages past the end
// yield an empty, non-nil slice.
func Slice[T any](items []T, p Params) Page[T] {
	p = New(p.Page, p.Limit)
	total := len(items)
	start := total
	if p.Page-1 <= total/p.Limit {
		start = min((p.Page-1)*p.Limit, total)
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])
	return Page[T]{Page: p.Page, Limit: p.Limit, Total: total, Items: window}
}

func intParam(q url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) {
			return fallback
		}
		return saturate(f)
	}
	return n
}

// saturate converts f to int, pinning values outside the int range to its
// bounds.
func saturate(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
