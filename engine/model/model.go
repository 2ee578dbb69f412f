// Package model defines the request model: the compact, renderer-agnostic
// intermediate representation that engine/lower produces and engine/render
// consumes. The shapes here mirror the teacher's engine/models/query.go
// style — flat structs carrying a Kind discriminator and a superset of the
// fields each variant needs, rather than an interface hierarchy, since every
// union here is small and closed.
package model

// Statement is the top-level translation output. Only Select is populated
// today; the field is a pointer so the type stays open for future
// insert/update/delete variants without widening Select's own zero value.
type Statement struct {
	Select *Select
}

// Select is a lowered PostgreSQL SELECT statement.
type Select struct {
	From    string
	Targets []Target
	Filter  *Filter
	Sorts   []Sort
	Limit   *Limit
}

// TargetKind discriminates the three Target variants.
type TargetKind string

const (
	TargetColumn    TargetKind = "column"
	TargetAggregate TargetKind = "aggregate"
	TargetEmbedded  TargetKind = "embedded"
)

// AggregateFunction is one of the five functions PostgREST exposes.
type AggregateFunction string

const (
	Avg   AggregateFunction = "avg"
	Count AggregateFunction = "count"
	Sum   AggregateFunction = "sum"
	Min   AggregateFunction = "min"
	Max   AggregateFunction = "max"
)

// JoinType is the join kind of an EmbeddedTarget.
type JoinType string

const (
	InnerJoin JoinType = "inner"
	LeftJoin  JoinType = "left"
)

// ColumnRef names a column by the relation it belongs to, used only inside
// JoinedColumns to describe the two sides of an equi-join.
type ColumnRef struct {
	Relation string
	Column   string
}

// JoinedColumns is the canonicalized equi-join pair for an EmbeddedTarget.
// Left is always the parent side (the side that does NOT reference the
// newly joined relation); Right is always the joined relation's side. See
// SPEC_FULL.md §4.2 for why this canonical form exists.
type JoinedColumns struct {
	Left  ColumnRef
	Right ColumnRef
}

// Target is a tagged union of ColumnTarget, AggregateTarget and
// EmbeddedTarget. Which fields are meaningful depends on Kind:
//
//	TargetColumn:    Column, Alias, Cast
//	TargetAggregate: Function, Column (empty only for bare count()), Alias, InputCast, OutputCast
//	TargetEmbedded:  Relation, Alias, Join, Targets, Flatten, JoinedColumns
type Target struct {
	Kind TargetKind

	// ColumnTarget / AggregateTarget
	Column     string
	Alias      string
	Cast       string
	Function   AggregateFunction
	InputCast  string
	OutputCast string

	// EmbeddedTarget
	Relation      string
	Join          JoinType
	Targets       []Target
	Flatten       bool
	JoinedColumns JoinedColumns
}

// FilterKind discriminates ColumnFilter and LogicalFilter.
type FilterKind string

const (
	FilterColumn  FilterKind = "column"
	FilterLogical FilterKind = "logical"
)

// FilterOperator is the operator of a ColumnFilter.
type FilterOperator string

const (
	OpEq     FilterOperator = "eq"
	OpNeq    FilterOperator = "neq"
	OpGt     FilterOperator = "gt"
	OpGte    FilterOperator = "gte"
	OpLt     FilterOperator = "lt"
	OpLte    FilterOperator = "lte"
	OpLike   FilterOperator = "like"
	OpIlike  FilterOperator = "ilike"
	OpMatch  FilterOperator = "match"
	OpImatch FilterOperator = "imatch"
	OpIs     FilterOperator = "is"
	OpIn     FilterOperator = "in"
	OpFts    FilterOperator = "fts"
	OpPlfts  FilterOperator = "plfts"
	OpPhfts  FilterOperator = "phfts"
	OpWfts   FilterOperator = "wfts"
)

// LogicalOperator is the operator of a LogicalFilter. "not" never appears
// here — negation is always folded into the Negate field of its child
// (SPEC_FULL.md §3 invariant 5, §8).
type LogicalOperator string

const (
	And LogicalOperator = "and"
	Or  LogicalOperator = "or"
)

// ValueKind discriminates the value carried by a ColumnFilter or appearing
// inside a Values list.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueNumber ValueKind = "number"
	ValueNull   ValueKind = "null"
)

// Value is a scalar filter operand. Number is kept as the literal source
// text (not parsed into float64) so rendering reproduces the user's exact
// formatting (e.g. "4" vs "4.0").
type Value struct {
	Kind ValueKind
	Text string
}

// Filter is a tagged union of ColumnFilter and LogicalFilter:
//
//	FilterColumn:  Column, Operator, Negate, Value/Values, Config (fts only)
//	FilterLogical: LogicalOp, Negate, Children
type Filter struct {
	Kind   FilterKind
	Negate bool

	// ColumnFilter
	Column   string
	Operator FilterOperator
	Value    *Value
	Values   []Value
	Config   string

	// LogicalFilter
	LogicalOp LogicalOperator
	Children  []Filter
}

// SortDirection is the explicit ASC/DESC of a Sort, or "" when unspecified.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// NullsOrder is the explicit NULLS FIRST/LAST of a Sort, or "" when
// unspecified.
type NullsOrder string

const (
	NullsFirst NullsOrder = "first"
	NullsLast  NullsOrder = "last"
)

// Sort is one ORDER BY item. Relation is non-empty only when Column belongs
// to an embedded resource (e.g. "order by authors.name"); a prefix naming the
// primary relation is dropped during lowering. Relation is kept separate
// from Column rather than folded into a single dotted string so a JSON-path
// Column containing a literal "." (e.g. meta->'first.name') can never be
// misread as relation-qualified.
type Sort struct {
	Relation  string
	Column    string
	Direction SortDirection
	Nulls     NullsOrder
}

// Limit is LIMIT/OFFSET. At least one of Count/Offset is non-nil whenever a
// Limit is present at all (SPEC_FULL.md §3).
type Limit struct {
	Count  *int
	Offset *int
}
