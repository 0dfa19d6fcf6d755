// Package query reads records of a Frappe record type from the site database.
package query

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/scango/visitorgate/internal/sqlutil"
)

// Op is a filter comparison.
type Op string

const (
	OpEquals  Op = "="
	OpAtLeast Op = ">="
	OpAtMost  Op = "<="
	OpBetween Op = "between"
	OpIn      Op = "in"
)

// Condition is one field comparison.
type Condition struct {
	Op     Op
	Values []interface{}
}

// Equals matches field = v.
func Equals(v interface{}) Condition {
	return Condition{Op: OpEquals, Values: []interface{}{v}}
}

// AtLeast matches field >= v.
func AtLeast(v interface{}) Condition {
	return Condition{Op: OpAtLeast, Values: []interface{}{v}}
}

// AtMost matches field <= v.
func AtMost(v interface{}) Condition {
	return Condition{Op: OpAtMost, Values: []interface{}{v}}
}

// Between matches from <= field <= to.
func Between(from, to interface{}) Condition {
	return Condition{Op: OpBetween, Values: []interface{}{from, to}}
}

// OneOf matches field IN (values...).
func OneOf(values ...interface{}) Condition {
	return Condition{Op: OpIn, Values: values}
}

// Filters is a conjunction of field conditions, kept in insertion order so
// the generated SQL is deterministic. Setting a field twice replaces its
// condition.
type Filters struct {
	conds *orderedmap.OrderedMap[string, Condition]
}

// NewFilters creates an empty filter set.
func NewFilters() *Filters {
	return &Filters{conds: orderedmap.NewOrderedMap[string, Condition]()}
}

// Set adds or replaces the condition on field. It returns f for chaining.
func (f *Filters) Set(field string, c Condition) *Filters {
	f.conds.Set(field, c)
	return f
}

// Get returns the condition on field.
func (f *Filters) Get(field string) (Condition, bool) {
	if f == nil {
		return Condition{}, false
	}
	return f.conds.Get(field)
}

// Len returns the number of conditions.
func (f *Filters) Len() int {
	if f == nil {
		return 0
	}
	return f.conds.Len()
}

// Fields lists the filtered fields in insertion order.
func (f *Filters) Fields() []string {
	if f == nil {
		return nil
	}
	return f.conds.Keys()
}

// Where renders the filters as a WHERE clause with ? placeholders.
// An empty filter set renders as "".
func (f *Filters) Where() (string, []interface{}, error) {
	if f.Len() == 0 {
		return "", nil, nil
	}

	var (
		clauses []string
		args    []interface{}
	)
	for el := f.conds.Front(); el != nil; el = el.Next() {
		column, err := sqlutil.QuoteField(el.Key)
		if err != nil {
			return "", nil, err
		}
		clause, err := el.Value.render(column)
		if err != nil {
			return "", nil, fmt.Errorf("filter on %s: %w", el.Key, err)
		}
		clauses = append(clauses, clause)
		args = append(args, el.Value.Values...)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (c Condition) render(column string) (string, error) {
	switch c.Op {
	case OpEquals, OpAtLeast, OpAtMost:
		if len(c.Values) != 1 {
			return "", fmt.Errorf("%s expects 1 value, got %d", c.Op, len(c.Values))
		}
		return fmt.Sprintf("%s %s ?", column, c.Op), nil
	case OpBetween:
		if len(c.Values) != 2 {
			return "", fmt.Errorf("between expects 2 values, got %d", len(c.Values))
		}
		return column + " BETWEEN ? AND ?", nil
	case OpIn:
		if len(c.Values) == 0 {
			return "", fmt.Errorf("in expects at least 1 value")
		}
		placeholders := make([]string, len(c.Values))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), nil
	default:
		return "", fmt.Errorf("unsupported operator %q", c.Op)
	}
}
