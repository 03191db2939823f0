package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// fieldFunc returns the typed value stored at a storage path.
type fieldFunc[T any] func(row *T, path string) (any, bool)

// table is a generic keyed collection that answers query.Finder calls.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[uuid.UUID]T
	entity   string
	notFound error
	id       func(*T) uuid.UUID
	field    fieldFunc[T]
}

func newTable[T any](entity string, notFound error, id func(*T) uuid.UUID, field fieldFunc[T]) *table[T] {
	return &table[T]{
		rows:     make(map[uuid.UUID]T),
		entity:   entity,
		notFound: notFound,
		id:       id,
		field:    field,
	}
}

// insert stores row after check approves it against every existing row.
func (t *table[T]) insert(row T, check func(existing *T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		for _, existing := range t.rows {
			if err := check(&existing); err != nil {
				return err
			}
		}
	}
	t.rows[t.id(&row)] = row
	return nil
}

func (t *table[T]) get(id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, t.notFound
	}
	return &row, nil
}

// first returns a copy of the row with the lowest id accepted by match.
func (t *table[T]) first(match func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var best *T
	for _, row := range t.rows {
		if !match(&row) {
			continue
		}
		if best == nil || t.id(&row).String() < t.id(best).String() {
			best = &row
		}
	}
	if best == nil {
		return nil, t.notFound
	}
	return best, nil
}

func (t *table[T]) replace(row T, check func(existing *T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(&row)
	if _, ok := t.rows[id]; !ok {
		return t.notFound
	}
	if check != nil {
		for key, existing := range t.rows {
			if key == id {
				continue
			}
			if err := check(&existing); err != nil {
				return err
			}
		}
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return t.notFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.rows)
}

// Find implements query.Finder.
func (t *table[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.checkPaths(q.Sort.Field, q.Predicate); err != nil {
		return nil, store.NewStoreError(t.entity, "find", "unsupported query", err)
	}

	rows := t.matching(q.Predicate)
	slices.SortStableFunc(rows, func(a, b T) int {
		c := t.compare(&a, &b, q.Sort.Field)
		if c == 0 {
			c = cmp.Compare(t.id(&a).String(), t.id(&b).String())
		}
		if q.Sort.Direction == query.Descending {
			return -c
		}
		return c
	})

	total := int64(len(rows))
	if q.Skip >= total {
		return []T{}, nil
	}
	end := total
	if q.Limit > 0 && q.Limit < total-q.Skip {
		end = q.Skip + q.Limit
	}
	return rows[q.Skip:end], nil
}

// Count implements query.Finder.
func (t *table[T]) Count(ctx context.Context, p query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := t.checkPaths("", p); err != nil {
		return 0, store.NewStoreError(t.entity, "count", "unsupported query", err)
	}
	return int64(len(t.matching(p))), nil
}

func (t *table[T]) matching(p query.Predicate) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		lookup := func(path string) (string, bool) {
			v, ok := t.field(&row, path)
			if !ok {
				return "", false
			}
			return stringify(v), true
		}
		if query.Matches(p, lookup) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) checkPaths(sortField string, p query.Predicate) error {
	var zero T
	paths := query.Fields(p)
	if sortField != "" {
		paths = append(paths, sortField)
	}
	for _, path := range paths {
		if _, ok := t.field(&zero, path); !ok {
			return fmt.Errorf("%w: unknown field %q", store.ErrInvalidEntity, path)
		}
	}
	return nil
}

func (t *table[T]) compare(a, b *T, path string) int {
	va, _ := t.field(a, path)
	vb, _ := t.field(b, path)
	return compareValues(va, vb)
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return cmp.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case uuid.UUID:
		y, _ := b.(uuid.UUID)
		return cmp.Compare(x.String(), y.String())
	default:
		return cmp.Compare(stringify(a), stringify(b))
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(x)
	case uuid.UUID:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
