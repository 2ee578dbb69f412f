// Package mapping holds the translator's single-source-of-truth lookup
// tables — cast-name canonicalization, the WHERE operator total function,
// and full-text-search function naming — in the same map-plus-lookup-
// function style as the teacher's mapping/operators.go and mapping/types.go
// (there: map[string]map[string]string SSOT tables with Get*/Is* helpers).
// Unlike the teacher's tables, which are keyed by database dialect because
// OmniQL targets several engines, every table here has exactly one dialect
// (PostgreSQL/PostgREST), so the dialect axis collapses away.
package mapping

import "github.com/pgrest-dev/pgrest/engine/model"

// ExprKind mirrors the PostgreSQL expression "kind" axis of SPEC_FULL.md
// §4.4's operator table (OP / LIKE / ILIKE / IN). Lowering code translates
// pg_query_go's A_Expr_Kind into this local, parser-independent enum before
// consulting the table, keeping this package free of a pg_query_go import
// (the teacher's own mapping package has no parser dependency either).
type ExprKind string

const (
	KindOp    ExprKind = "op"
	KindLike  ExprKind = "like"
	KindIlike ExprKind = "ilike"
	KindIn    ExprKind = "in"
)

type operatorEntry struct {
	op     model.FilterOperator
	negate bool
}

// operatorTable is the total function on (kind, symbol) pairs demanded by
// SPEC_FULL.md §4.4/§8: any pair absent from this table is Unsupported.
// IN's "<>" entry and LIKE/ILIKE's "!~~"/"!~~*" entries capture PostgreSQL's
// grammar desugaring of `NOT IN`/`NOT LIKE`/`NOT ILIKE` into an AEXPR_IN/
// AEXPR_LIKE/AEXPR_ILIKE node of the same kind but a distinct operator
// symbol (rather than a NOT_EXPR wrapping the positive node, the way an
// explicit `NOT (...)` appears) — so the negation has to be read off the
// symbol here, not folded later.
var operatorTable = map[ExprKind]map[string]operatorEntry{
	KindOp: {
		"=":  {model.OpEq, false},
		"<>": {model.OpNeq, false},
		">":  {model.OpGt, false},
		">=": {model.OpGte, false},
		"<":  {model.OpLt, false},
		"<=": {model.OpLte, false},
		"~":  {model.OpMatch, false},
		"~*": {model.OpImatch, false},
		"@@": {model.OpFts, false},
	},
	KindLike: {
		"~~":  {model.OpLike, false},
		"!~~": {model.OpLike, true},
	},
	KindIlike: {
		"~~*":  {model.OpIlike, false},
		"!~~*": {model.OpIlike, true},
	},
	KindIn: {
		"=":  {model.OpIn, false},
		"<>": {model.OpIn, true},
	},
}

// Operator looks up the (kind, symbol) pair. ok is false for any pair not
// in operatorTable — callers must treat that as Unsupported.
func Operator(kind ExprKind, symbol string) (op model.FilterOperator, negate bool, ok bool) {
	bySymbol, found := operatorTable[kind]
	if !found {
		return "", false, false
	}
	entry, found := bySymbol[symbol]
	if !found {
		return "", false, false
	}
	return entry.op, entry.negate, true
}
