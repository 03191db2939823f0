package query

import "strings"

// Predicate is a search condition over storage paths. The set of
// implementations is closed; storage backends type-switch over them.
type Predicate interface {
	isPredicate()
}

// MatchAll matches every record.
type MatchAll struct{}

// FieldEquals matches records whose field equals Value exactly.
type FieldEquals struct {
	Field string
	Value string
}

// FieldContains matches records whose field contains Value as a
// case-insensitive substring.
type FieldContains struct {
	Field string
	Value string
}

// Or matches records satisfying at least one of Terms. An empty Or matches
// nothing; Build never produces one.
type Or struct {
	Terms []Predicate
}

func (MatchAll) isPredicate()      {}
func (FieldEquals) isPredicate()   {}
func (FieldContains) isPredicate() {}
func (Or) isPredicate()            {}

// MatchMode selects how a Term's value is compared with its field.
type MatchMode int

const (
	// Exact compares for equality. Used for structural scopes like blogId.
	Exact MatchMode = iota
	// Partial compares by case-insensitive substring containment. Used for
	// user-facing search terms.
	Partial
)

// String implements fmt.Stringer.
func (m MatchMode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "unknown"
	}
}

// Term pairs a storage path with an optional search value.
type Term struct {
	Field string
	Value *string
}

// T is shorthand for building a Term.
func T(field string, value *string) Term {
	return Term{Field: field, Value: value}
}

// Build combines the non-nil terms into a single predicate using OR
// semantics. With no usable terms the result is MatchAll.
func Build(mode MatchMode, terms ...Term) Predicate {
	conds := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		if term.Value == nil {
			continue
		}
		conds = append(conds, condition(mode, term.Field, *term.Value))
	}

	switch len(conds) {
	case 0:
		return MatchAll{}
	case 1:
		return conds[0]
	default:
		return Or{Terms: conds}
	}
}

// Equals is a convenience for a single exact-match predicate.
func Equals(field, value string) Predicate {
	return FieldEquals{Field: field, Value: value}
}

func condition(mode MatchMode, field, value string) Predicate {
	if mode == Exact {
		return FieldEquals{Field: field, Value: value}
	}
	return FieldContains{Field: field, Value: value}
}

// Lookup returns the string form of the value stored at path, and false when
// the record has no such field.
type Lookup func(path string) (string, bool)

// Matches evaluates p in process against a record exposed through lookup.
func Matches(p Predicate, lookup Lookup) bool {
	switch c := p.(type) {
	case nil, MatchAll:
		return true
	case FieldEquals:
		v, ok := lookup(c.Field)
		return ok && v == c.Value
	case FieldContains:
		v, ok := lookup(c.Field)
		return ok && strings.Contains(strings.ToLower(v), strings.ToLower(c.Value))
	case Or:
		for _, term := range c.Terms {
			if Matches(term, lookup) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Fields returns every storage path referenced by p, in order of appearance.
// Backends use it to reject predicates over paths they do not expose.
func Fields(p Predicate) []string {
	switch c := p.(type) {
	case FieldEquals:
		return []string{c.Field}
	case FieldContains:
		return []string{c.Field}
	case Or:
		var out []string
		for _, term := range c.Terms {
			out = append(out, Fields(term)...)
		}
		return out
	default:
		return nil
	}
}
