package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// maxPrealloc bounds the result capacity reserved up front; Limit comes
// from the client and has no upper bound.
const maxPrealloc = 64

// collection implements query.Finder and basic CRUD over documents of type D
// that convert to domain entities of type T.
type collection[T, D any] struct {
	coll     *mongodriver.Collection
	entity   string
	fields   fieldSet
	notFound error
	toDomain func(*D) (*T, error)
}

// Find implements query.Finder.
func (c *collection[T, D]) Find(ctx context.Context, q query.Query) ([]T, error) {
	op := "storage/mongo/" + c.entity + "/Find"

	filter, err := toFilter(q.Predicate, c.fields)
	if err != nil {
		return nil, store.NewStoreError(c.entity, "find", "unsupported query", err)
	}
	sort, err := toSort(q.Sort, c.fields)
	if err != nil {
		return nil, store.NewStoreError(c.entity, "find", "unsupported query", err)
	}

	opts := options.Find().SetSort(sort).SetSkip(q.Skip).SetLimit(q.Limit)
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = cur.Close(context.Background()) }()

	out := make([]T, 0, min(q.Limit, maxPrealloc))
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		item, err := c.toDomain(&doc)
		if err != nil {
			return nil, fmt.Errorf("%s: convert: %w", op, err)
		}
		out = append(out, *item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return out, nil
}

// Count implements query.Finder.
func (c *collection[T, D]) Count(ctx context.Context, p query.Predicate) (int64, error) {
	filter, err := toFilter(p, c.fields)
	if err != nil {
		return 0, store.NewStoreError(c.entity, "count", "unsupported query", err)
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("storage/mongo/%s/Count: %w", c.entity, err)
	}
	return n, nil
}

func (c *collection[T, D]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	var doc D
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, c.notFound
		}
		return nil, fmt.Errorf("storage/mongo/%s/FindOne: %w", c.entity, err)
	}
	return c.toDomain(&doc)
}

func (c *collection[T, D]) insert(ctx context.Context, doc *D) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mapWriteError(c.entity, "insert", err)
	}
	return nil
}

func (c *collection[T, D]) replace(ctx context.Context, id string, doc *D) error {
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return mapWriteError(c.entity, "replace", err)
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c *collection[T, D]) set(ctx context.Context, id string, fields bson.D) error {
	res, err := c.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return mapWriteError(c.entity, "update", err)
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

func (c *collection[T, D]) remove(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("storage/mongo/%s/Delete: %w", c.entity, err)
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}

// mapWriteError maps duplicate key errors on the user indexes to the
// matching store errors.
func mapWriteError(entity, op string, err error) error {
	if !mongodriver.IsDuplicateKeyError(err) {
		return fmt.Errorf("storage/mongo/%s/%s: %w", entity, op, err)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, loginIndex):
		return fmt.Errorf("%w: %v", store.ErrLoginExists, err)
	case strings.Contains(msg, emailIndex):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
}
