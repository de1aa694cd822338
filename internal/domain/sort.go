package domain

// SortKey is the closed enumeration of list-view orderings.
type SortKey string

const (
	// SortUnspecified leaves the natural order of the result set.
	SortUnspecified SortKey = ""
	SortNameAsc     SortKey = "ascending"
	SortNameDesc    SortKey = "descending"
	SortNewest      SortKey = "newest"
	SortOldest      SortKey = "oldest"
)

// ParseSortKey maps a raw sortBy query value onto the enumeration. An empty
// value is allowed; anything else outside the enumeration is rejected at the
// boundary.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case SortUnspecified, SortNameAsc, SortNameDesc, SortNewest, SortOldest:
		return SortKey(raw), nil
	default:
		return SortUnspecified, &ValidationError{Field: "sortBy", Message: "unknown sort key"}
	}
}
