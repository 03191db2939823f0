package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query-string parameter names accepted by list endpoints.
const (
	ParamPageNumber      = "pageNumber"
	ParamPageSize        = "pageSize"
	ParamSortBy          = "sortBy"
	ParamSortDirection   = "sortDirection"
	ParamSearchNameTerm  = "searchNameTerm"
	ParamSearchLoginTerm = "searchLoginTerm"
	ParamSearchEmailTerm = "searchEmailTerm"
)

// Defaults applied by Normalize when a parameter is absent or unusable.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	DefaultSortBy     = "createdAt"
)

// SortDirection is the ordering applied to the resolved sort field.
type SortDirection string

const (
	// Ascending orders from smallest to largest.
	Ascending SortDirection = "asc"
	// Descending orders from largest to smallest. It is the default.
	Descending SortDirection = "desc"
)

// ParseSortDirection maps the raw sortDirection value to a SortDirection.
// Only the literal ascending token (case-insensitive) selects Ascending;
// anything else, including typos and empty input, yields Descending.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(Ascending)) {
		return Ascending
	}
	return Descending
}

// Filter is the fully defaulted, typed form of a list request.
// Search terms are nil when the caller did not supply a usable value.
type Filter struct {
	PageNumber      int
	PageSize        int
	SortBy          string
	SortDirection   SortDirection
	SearchNameTerm  *string
	SearchLoginTerm *string
	SearchEmailTerm *string
}

// DefaultFilter returns the filter used when no parameters are supplied.
func DefaultFilter() Filter {
	return Filter{
		PageNumber:    DefaultPageNumber,
		PageSize:      DefaultPageSize,
		SortBy:        DefaultSortBy,
		SortDirection: Descending,
	}
}

// Normalize converts raw query parameters into a Filter. It never fails:
// missing, non-numeric or non-positive paging values fall back to defaults.
// pageSize has no upper bound.
func Normalize(values url.Values) Filter {
	f := DefaultFilter()

	f.PageNumber = positiveIntOr(values.Get(ParamPageNumber), DefaultPageNumber)
	f.PageSize = positiveIntOr(values.Get(ParamPageSize), DefaultPageSize)

	if sortBy := strings.TrimSpace(values.Get(ParamSortBy)); sortBy != "" {
		f.SortBy = sortBy
	}
	f.SortDirection = ParseSortDirection(values.Get(ParamSortDirection))

	f.SearchNameTerm = searchTerm(values, ParamSearchNameTerm)
	f.SearchLoginTerm = searchTerm(values, ParamSearchLoginTerm)
	f.SearchEmailTerm = searchTerm(values, ParamSearchEmailTerm)

	return f
}

// Skip returns the number of records preceding the requested page.
// The second return value is false when the offset does not fit in an int64,
// in which case the page is necessarily past the end of any collection.
func (f Filter) Skip() (int64, bool) {
	page := int64(f.PageNumber) - 1
	size := int64(f.PageSize)
	if page <= 0 || size <= 0 {
		return 0, true
	}
	if page > math.MaxInt64/size {
		return 0, false
	}
	return page * size, true
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// searchTerm returns the verbatim value when it has any non-whitespace
// character. Empty and whitespace-only values mean "no filter" for every
// entity.
func searchTerm(values url.Values, key string) *string {
	raw, ok := values[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	v := raw[0]
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
