package shared

import "strings"

const (
	// DefaultLimit is the page size used when a list request carries no limit
	DefaultLimit = 50
	// MaxLimit caps the page size of any list request
	MaxLimit = 500
)

// Filter carries the paging and ordering shared by every list query.
// Resource filters embed it next to their own field filters.
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}

// Normalize clamps limit/offset and lower-cases the order direction
func (f Filter) Normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.OrderDir = strings.ToLower(f.OrderDir)
	if f.OrderDir != "asc" {
		f.OrderDir = "desc"
	}
	return f
}
