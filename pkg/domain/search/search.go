// Package search translates structured search terms into SQL predicates.
//
// The input grammar is deliberately small: a query is a list of clauses,
// each scoped to one field or unscoped; each clause carries value terms
// using `*` (any run) and `?` (any one character) wildcards. Everything
// else is matched literally, including the SQL metacharacters % and _.
package search

import (
	"fmt"
	"strings"

	domerr "github.com/trialkeep/trialkeep/pkg/domain/errors"
)

// Clause is one parsed search clause. Field == "" means "match any
// searchable field of the entity".
type Clause struct {
	Field string
	Terms []string
}

// ParseError : a clause references a field the entity does not register.
type ParseError struct {
	Field string
}

var _ error = ParseError{}

func (e ParseError) Error() string {
	return fmt.Sprintf("unsearchable field: %s", e.Field)
}
func (e ParseError) Unwrap() error {
	return domerr.ErrSearchParse
}

// Builder numbers bind parameters and collects their values.
// Seed it with the count of arguments the surrounding query already binds.
type Builder struct {
	args []any
}

func NewBuilder(preceding ...any) *Builder {
	return &Builder{args: append([]any{}, preceding...)}
}

// Bind registers v and returns its placeholder ($1, $2, ...).
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *Builder) Args() []any {
	return b.args
}

// Transform renders the predicate for one field given a LIKE pattern.
type Transform func(b *Builder, pattern string) string

// Like is the standard Transform: a LIKE over one column with `/` as
// the escape character, matching what Escape produces.
func Like(column string) Transform {
	return func(b *Builder, pattern string) string {
		return fmt.Sprintf(`%s like %s escape '/'`, column, b.Bind(pattern))
	}
}

// Fields registers the searchable surface of one entity kind.
type Fields struct {
	// Transforms maps a query field name to its predicate builder.
	Transforms map[string]Transform

	// Unscoped lists, in a fixed order, the field names an unscoped
	// clause fans out to.
	Unscoped []string
}

// Escape rewrites one value term into a LIKE pattern:
// `*` -> `%`, `?` -> `_`; literal `/`, `%` and `_` are escaped with `/`.
func Escape(term string) string {
	var out strings.Builder
	for _, r := range term {
		switch r {
		case '*':
			out.WriteRune('%')
		case '?':
			out.WriteRune('_')
		case '/', '%', '_':
			out.WriteRune('/')
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// fuzzy concatenates terms into one %term1%term2% pattern.
func fuzzy(terms []string) string {
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = Escape(t)
	}
	return "%" + strings.Join(escaped, "%") + "%"
}

// exactish concatenates terms without the outer wildcards.
func exactish(terms []string) string {
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = Escape(t)
	}
	return strings.Join(escaped, "%")
}

// join combines predicates with op, collapsing the 1-operand case so no
// vacuous boolean wrapper reaches the query planner.
func join(op string, conds []string) string {
	if len(conds) == 1 {
		return conds[0]
	}
	return "(" + strings.Join(conds, " "+op+" ") + ")"
}

// Translate renders clauses into one SQL predicate over fields,
// binding pattern values on b. Clauses are AND-ed; an unscoped clause
// OR-s across every registered unscoped field. An empty clause list
// yields "" (the caller omits the predicate).
func Translate(clauses []Clause, fields Fields, b *Builder) (string, error) {
	if len(clauses) == 0 {
		return "", nil
	}

	ands := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c.Field == "" {
			pattern := fuzzy(c.Terms)
			ors := make([]string, 0, len(fields.Unscoped))
			for _, name := range fields.Unscoped {
				tf, ok := fields.Transforms[name]
				if !ok {
					return "", ParseError{Field: name}
				}
				ors = append(ors, tf(b, pattern))
			}
			if len(ors) == 0 {
				return "", ParseError{Field: "*"}
			}
			ands = append(ands, join("or", ors))
			continue
		}

		tf, ok := fields.Transforms[c.Field]
		if !ok {
			return "", ParseError{Field: c.Field}
		}
		ands = append(ands, tf(b, exactish(c.Terms)))
	}

	return join("and", ands), nil
}
