package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Builder returns a squirrel statement builder using $n placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Op is a comparison operator usable in a Predicate.
type Op int

const (
	// OpEq is exact, case-sensitive equality.
	OpEq Op = iota
	// OpContainsFold is a case-insensitive substring match.
	OpContainsFold
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContainsFold:
		return "contains_fold"
	default:
		return "unknown"
	}
}

// Condition is a single (column, op, value) triple.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Predicate accumulates conditions that are joined by AND when rendered.
// The zero value is an empty predicate that matches every row.
type Predicate struct {
	conds []Condition
}

// NewPredicate returns an empty predicate.
func NewPredicate() *Predicate {
	return &Predicate{}
}

// Eq adds column = value.
func (p *Predicate) Eq(column string, value any) *Predicate {
	p.conds = append(p.conds, Condition{Column: column, Op: OpEq, Value: value})
	return p
}

// ContainsFold adds LOWER(column) LIKE %lower(value)%. LIKE wildcards in
// value are escaped so they match literally.
func (p *Predicate) ContainsFold(column, value string) *Predicate {
	p.conds = append(p.conds, Condition{Column: column, Op: OpContainsFold, Value: value})
	return p
}

// Conditions returns the accumulated conditions in insertion order.
func (p *Predicate) Conditions() []Condition {
	return p.conds
}

// Len returns the number of conditions.
func (p *Predicate) Len() int {
	return len(p.conds)
}

// Sqlizer renders the conjunction. An empty predicate renders as nil.
func (p *Predicate) Sqlizer() sq.Sqlizer {
	if p == nil || len(p.conds) == 0 {
		return nil
	}

	and := make(sq.And, 0, len(p.conds))
	for _, c := range p.conds {
		switch c.Op {
		case OpContainsFold:
			s, _ := c.Value.(string)
			and = append(and, sq.Like{"LOWER(" + c.Column + ")": "%" + escapeLike(strings.ToLower(s)) + "%"})
		default:
			and = append(and, sq.Eq{c.Column: c.Value})
		}
	}
	return and
}

// Apply adds the predicate as a WHERE clause to q.
func (p *Predicate) Apply(q sq.SelectBuilder) sq.SelectBuilder {
	if w := p.Sqlizer(); w != nil {
		return q.Where(w)
	}
	return q
}

// escapeLike escapes LIKE metacharacters using the default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
