package query

// Paginator is the envelope returned by every list endpoint.
type Paginator[T any] struct {
	PagesCount int64 `json:"pagesCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

// NewPaginator assembles the envelope for one page. page is echoed as given,
// even when it lies past the last page. A nil items slice is replaced by an
// empty one so the JSON field is always an array.
func NewPaginator[T any](page, pageSize int, totalCount int64, items []T) *Paginator[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginator[T]{
		PagesCount: PagesCount(totalCount, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		Items:      items,
	}
}

// PagesCount returns ceil(total / pageSize), or 0 when pageSize is not positive.
func PagesCount(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}
