package query

import (
	"context"
	"fmt"
)

// Sort is a resolved storage path plus direction.
type Sort struct {
	Field     string
	Direction SortDirection
}

// Query is what a Finder executes: a predicate, an ordering and an offset
// window. Limit is always positive.
type Query struct {
	Predicate Predicate
	Sort      Sort
	Skip      int64
	Limit     int64
}

// Finder is the persistence primitive the pipeline runs against. Find must
// order by Sort and break ties by record id in the same direction, so that
// reversing the direction reverses the result.
type Finder[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, p Predicate) (int64, error)
}

// List runs the full pipeline for one list request: it resolves the sort key
// (failing before any store call when it is unknown), counts the matching
// records, fetches the requested window and projects each record.
//
// Count and Find are separate calls with no snapshot between them, so under
// concurrent writes the total may disagree with the page contents.
func List[T, V any](
	ctx context.Context,
	finder Finder[T],
	props PropertyMap,
	pred Predicate,
	f Filter,
	project func(*T) V,
) (*Paginator[V], error) {
	field, err := props.Resolve(f.SortBy)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		pred = MatchAll{}
	}

	total, err := finder.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	skip, ok := f.Skip()
	if !ok || skip >= total {
		return NewPaginator[V](f.PageNumber, f.PageSize, total, nil), nil
	}

	records, err := finder.Find(ctx, Query{
		Predicate: pred,
		Sort:      Sort{Field: field, Direction: f.SortDirection},
		Skip:      skip,
		Limit:     int64(f.PageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	items := make([]V, 0, len(records))
	for i := range records {
		items = append(items, project(&records[i]))
	}

	return NewPaginator(f.PageNumber, f.PageSize, total, items), nil
}
