package query

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	f := Normalize(url.Values{})

	assert.Equal(t, 1, f.PageNumber)
	assert.Equal(t, 10, f.PageSize)
	assert.Equal(t, "createdAt", f.SortBy)
	assert.Equal(t, Descending, f.SortDirection)
	assert.Nil(t, f.SearchNameTerm)
	assert.Nil(t, f.SearchLoginTerm)
	assert.Nil(t, f.SearchEmailTerm)
	assert.Equal(t, DefaultFilter(), f)
}

func TestNormalize_Paging(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber string
		pageSize   string
		wantNumber int
		wantSize   int
	}{
		{name: "valid", pageNumber: "3", pageSize: "25", wantNumber: 3, wantSize: 25},
		{name: "non numeric", pageNumber: "abc", pageSize: "x1", wantNumber: 1, wantSize: 10},
		{name: "negative", pageNumber: "-2", pageSize: "-5", wantNumber: 1, wantSize: 10},
		{name: "zero", pageNumber: "0", pageSize: "0", wantNumber: 1, wantSize: 10},
		{name: "float", pageNumber: "2.5", pageSize: "3.0", wantNumber: 1, wantSize: 10},
		{name: "padded", pageNumber: " 4 ", pageSize: " 7", wantNumber: 4, wantSize: 7},
		{name: "no cap on page size", pageNumber: "1", pageSize: "100000", wantNumber: 1, wantSize: 100000},
		{name: "overflow", pageNumber: "99999999999999999999999", pageSize: "1", wantNumber: 1, wantSize: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Normalize(url.Values{
				ParamPageNumber: {tc.pageNumber},
				ParamPageSize:   {tc.pageSize},
			})
			assert.Equal(t, tc.wantNumber, f.PageNumber)
			assert.Equal(t, tc.wantSize, f.PageSize)
		})
	}
}

func TestNormalize_Sort(t *testing.T) {
	tests := []struct {
		name          string
		sortBy        string
		sortDirection string
		wantBy        string
		wantDirection SortDirection
	}{
		{name: "asc", sortBy: "name", sortDirection: "asc", wantBy: "name", wantDirection: Ascending},
		{name: "asc upper case", sortBy: "name", sortDirection: "ASC", wantBy: "name", wantDirection: Ascending},
		{name: "desc", sortBy: "login", sortDirection: "desc", wantBy: "login", wantDirection: Descending},
		{name: "typo defaults to desc", sortBy: "login", sortDirection: "ascending", wantBy: "login", wantDirection: Descending},
		{name: "empty sortBy defaults", sortBy: "  ", sortDirection: "", wantBy: "createdAt", wantDirection: Descending},
		{name: "unknown field passes through", sortBy: "nope", sortDirection: "asc", wantBy: "nope", wantDirection: Ascending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Normalize(url.Values{
				ParamSortBy:        {tc.sortBy},
				ParamSortDirection: {tc.sortDirection},
			})
			assert.Equal(t, tc.wantBy, f.SortBy)
			assert.Equal(t, tc.wantDirection, f.SortDirection)
		})
	}
}

func TestNormalize_SearchTerms(t *testing.T) {
	f := Normalize(url.Values{
		ParamSearchNameTerm:  {"Tech"},
		ParamSearchLoginTerm: {""},
		ParamSearchEmailTerm: {"   "},
	})

	require.NotNil(t, f.SearchNameTerm)
	assert.Equal(t, "Tech", *f.SearchNameTerm)
	assert.Nil(t, f.SearchLoginTerm, "empty login term means no filter")
	assert.Nil(t, f.SearchEmailTerm, "whitespace email term means no filter")

	f = Normalize(url.Values{ParamSearchLoginTerm: {" a b "}})
	require.NotNil(t, f.SearchLoginTerm)
	assert.Equal(t, " a b ", *f.SearchLoginTerm, "terms are passed through verbatim")
}

func TestFilter_Skip(t *testing.T) {
	f := DefaultFilter()
	skip, ok := f.Skip()
	assert.True(t, ok)
	assert.Equal(t, int64(0), skip)

	f.PageNumber, f.PageSize = 3, 7
	skip, ok = f.Skip()
	assert.True(t, ok)
	assert.Equal(t, int64(14), skip)

	f.PageNumber, f.PageSize = math.MaxInt, math.MaxInt
	_, ok = f.Skip()
	assert.False(t, ok, "offset past int64 range is reported")
}

func TestParseSortDirection(t *testing.T) {
	for _, raw := range []string{"asc", "Asc", " asc "} {
		assert.Equal(t, Ascending, ParseSortDirection(raw), raw)
	}
	for _, raw := range []string{"", "desc", "DESC", "up", strconv.Itoa(1)} {
		assert.Equal(t, Descending, ParseSortDirection(raw), raw)
	}
}
