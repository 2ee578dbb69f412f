package mapping

import "github.com/pgrest-dev/pgrest/engine/model"

// ftsFunctionOperators maps the four PostgreSQL text-search query
// constructors to the filter operator they lower to (SPEC_FULL.md §4.4).
// plainto_tsquery/phraseto_tsquery/websearch_to_tsquery carry an implicit
// search mode that to_tsquery does not, hence the distinct operators rather
// than a single "fts" with a mode field.
var ftsFunctionOperators = map[string]model.FilterOperator{
	"to_tsquery":          model.OpFts,
	"plainto_tsquery":     model.OpPlfts,
	"phraseto_tsquery":    model.OpPhfts,
	"websearch_to_tsquery": model.OpWfts,
}

// FtsOperator resolves a FuncCall's function name to its filter operator.
func FtsOperator(funcName string) (model.FilterOperator, bool) {
	op, ok := ftsFunctionOperators[funcName]
	return op, ok
}

// ftsOperatorTypes is FtsOperator's inverse, used by the client-code
// renderer to populate a full-text filter's `{type: ...}` option
// (SPEC_FULL.md §4.8). OpFts has no entry: to_tsquery is the client
// library's default search mode, so it is omitted from the rendered
// options rather than spelled out as "type: 'default'".
var ftsOperatorTypes = map[model.FilterOperator]string{
	model.OpPlfts: "plain",
	model.OpPhfts: "phrase",
	model.OpWfts:  "websearch",
}

// FtsOperatorType returns the client-code `{type}` value for op, and false
// when op needs no explicit type (OpFts, or any non-fts operator).
func FtsOperatorType(op model.FilterOperator) (string, bool) {
	t, ok := ftsOperatorTypes[op]
	return t, ok
}
