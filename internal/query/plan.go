package query

import (
	"strconv"
	"strings"
)

// Operator identifies a comparison used in a Plan filter.
type Operator string

const (
	// Eq is an equality restriction on a partition or clustering column.
	Eq Operator = "="
	// Gte is an inclusive lower bound.
	Gte Operator = ">="
	// Gt is an exclusive lower bound.
	Gt Operator = ">"
	// Lt is an exclusive upper bound.
	Lt Operator = "<"
	// In is an equality-set restriction. The store imposes a ceiling on the
	// number of values per query; chunking is the planner's responsibility.
	In Operator = "IN"
	// TokenGte is an inclusive lower bound on the partition token of the
	// filtered column, used for keyset pagination over partition keys.
	TokenGte Operator = "TOKEN>="
)

// Direction controls result ordering on the clustering columns.
type Direction string

const (
	// Ascending orders results from oldest to newest clustering values.
	Ascending Direction = "ASC"
	// Descending orders results from newest to oldest clustering values.
	Descending Direction = "DESC"
)

// Filter is a single column restriction. Filters combine with logical AND.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Plan is an immutable select plan. Transformations return copies; a Plan
// value can therefore be shared, compared, and rendered repeatedly without
// surprise mutation.
type Plan struct {
	table          string
	columns        []string
	filters        []Filter
	orderColumns   []string
	orderDirection Direction
	limit          int
	allowFiltering bool
}

// NewPlan creates a select plan over the given table.
func NewPlan(table string) Plan {
	return Plan{table: table}
}

// Table returns the table the plan selects from.
func (p Plan) Table() string {
	return p.table
}

// Columns returns the projected columns, or nil for a bare SELECT *.
func (p Plan) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Filters returns the accumulated restrictions in insertion order.
func (p Plan) Filters() []Filter {
	return append([]Filter(nil), p.filters...)
}

// OrderDirection returns the configured ordering direction, or the empty
// string when no ordering clause is set.
func (p Plan) OrderDirection() Direction {
	if len(p.orderColumns) == 0 {
		return ""
	}
	return p.orderDirection
}

// EffectiveLimit returns the configured limit, or zero when unlimited.
func (p Plan) EffectiveLimit() int {
	return p.limit
}

// Select sets the projected columns, replacing any previous projection.
func (p Plan) Select(columns ...string) Plan {
	p.columns = append([]string(nil), columns...)
	return p
}

// Where appends a column restriction.
func (p Plan) Where(column string, op Operator, value any) Plan {
	p.filters = append(append([]Filter(nil), p.filters...), Filter{
		Column: column,
		Op:     op,
		Value:  value,
	})
	return p
}

// OrderBy sets the ordering clause over the given clustering columns,
// replacing any previous ordering.
func (p Plan) OrderBy(direction Direction, columns ...string) Plan {
	p.orderColumns = append([]string(nil), columns...)
	p.orderDirection = direction
	return p
}

// Limit caps the number of returned rows. Zero means unlimited.
func (p Plan) Limit(n int) Plan {
	p.limit = n
	return p
}

// AllowFiltering marks the plan as requiring server-side filtering.
func (p Plan) AllowFiltering() Plan {
	p.allowFiltering = true
	return p
}

// Build renders the plan into an executable Statement.
func (p Plan) Build() Statement {
	var b strings.Builder
	args := make([]any, 0, len(p.filters))

	b.WriteString("SELECT ")
	if len(p.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(p.columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(p.table)

	for i, f := range p.filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		switch f.Op {
		case In:
			b.WriteString(f.Column)
			b.WriteString(" IN ?")
		case TokenGte:
			b.WriteString("TOKEN(")
			b.WriteString(f.Column)
			b.WriteString(") >= ?")
		default:
			b.WriteString(f.Column)
			b.WriteString(" ")
			b.WriteString(string(f.Op))
			b.WriteString(" ?")
		}
		args = append(args, f.Value)
	}

	if len(p.orderColumns) > 0 {
		b.WriteString(" ORDER BY ")
		for i, col := range p.orderColumns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(col)
			b.WriteString(" ")
			b.WriteString(string(p.orderDirection))
		}
	}

	if p.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(p.limit))
	}

	if p.allowFiltering {
		b.WriteString(" ALLOW FILTERING")
	}

	return Statement{CQL: b.String(), Args: args}
}
