package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// fieldSet lists the storage paths a collection exposes. The id path maps to
// _id; every other path is the document field of the same name.
type fieldSet map[string]bool

func (s fieldSet) field(path string) (string, error) {
	if !s[path] {
		return "", fmt.Errorf("%w: unknown field %q", store.ErrInvalidEntity, path)
	}
	if path == query.PathID {
		return "_id", nil
	}
	return path, nil
}

// toFilter translates p into a bson filter document.
func toFilter(p query.Predicate, fields fieldSet) (bson.M, error) {
	switch c := p.(type) {
	case nil, query.MatchAll:
		return bson.M{}, nil
	case query.FieldEquals:
		f, err := fields.field(c.Field)
		if err != nil {
			return nil, err
		}
		return bson.M{f: bson.M{"$eq": c.Value}}, nil
	case query.FieldContains:
		f, err := fields.field(c.Field)
		if err != nil {
			return nil, err
		}
		return bson.M{f: bson.M{"$regex": regexp.QuoteMeta(c.Value), "$options": "i"}}, nil
	case query.Or:
		if len(c.Terms) == 0 {
			return bson.M{"_id": bson.M{"$exists": false}}, nil
		}
		terms := make(bson.A, 0, len(c.Terms))
		for _, term := range c.Terms {
			f, err := toFilter(term, fields)
			if err != nil {
				return nil, err
			}
			terms = append(terms, f)
		}
		return bson.M{"$or": terms}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported predicate %T", store.ErrInvalidEntity, p)
	}
}

// toSort returns the sort document for s with _id as a tie-breaker in the
// same direction.
func toSort(s query.Sort, fields fieldSet) (bson.D, error) {
	f, err := fields.field(s.Field)
	if err != nil {
		return nil, err
	}
	dir := -1
	if s.Direction == query.Ascending {
		dir = 1
	}
	if f == "_id" {
		return bson.D{{Key: "_id", Value: dir}}, nil
	}
	return bson.D{{Key: f, Value: dir}, {Key: "_id", Value: dir}}, nil
}
