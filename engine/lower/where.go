package lower

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
	"github.com/pgrest-dev/pgrest/mapping"
)

const valueQuoteHint = "Did you forget to wrap your value in single quotes?"

// LowerWhere lowers a WHERE expression tree into a Filter (SPEC_FULL.md
// §4.4). Returns (nil, nil) for a nil node (no WHERE clause).
func LowerWhere(node *pg_query.Node) (*model.Filter, error) {
	if node == nil {
		return nil, nil
	}
	return lowerFilterNode(node)
}

func lowerFilterNode(node *pg_query.Node) (*model.Filter, error) {
	if be := node.GetBoolExpr(); be != nil {
		return lowerBoolExpr(be)
	}
	if nt := node.GetNullTest(); nt != nil {
		return lowerNullTest(nt)
	}
	if ae := node.GetAExpr(); ae != nil {
		return lowerAExpr(ae)
	}
	return nil, errors.Unsupportedf("unsupported WHERE expression")
}

func lowerBoolExpr(be *pg_query.BoolExpr) (*model.Filter, error) {
	switch be.Boolop {
	case pg_query.BoolExprType_AND_EXPR, pg_query.BoolExprType_OR_EXPR:
		logicalOp := model.And
		if be.Boolop == pg_query.BoolExprType_OR_EXPR {
			logicalOp = model.Or
		}
		children := make([]model.Filter, 0, len(be.Args))
		for _, arg := range be.Args {
			child, err := lowerFilterNode(arg)
			if err != nil {
				return nil, err
			}
			children = append(children, *child)
		}
		return &model.Filter{Kind: model.FilterLogical, LogicalOp: logicalOp, Children: children}, nil

	case pg_query.BoolExprType_NOT_EXPR:
		if len(be.Args) != 1 {
			return nil, errors.Unsupportedf("NOT must have exactly one operand")
		}
		child, err := lowerFilterNode(be.Args[0])
		if err != nil {
			return nil, err
		}
		// Fold: the NOT node itself never survives (spec.md §3 invariant 5,
		// §4.4) — its single child is returned directly with Negate forced
		// true.
		folded := *child
		folded.Negate = true
		return &folded, nil

	default:
		return nil, errors.Unsupportedf("unsupported boolean expression")
	}
}

func lowerNullTest(nt *pg_query.NullTest) (*model.Filter, error) {
	column, err := lowerFilterColumn(nt.Arg)
	if err != nil {
		return nil, err
	}
	value := model.Value{Kind: model.ValueNull}
	return &model.Filter{
		Kind:     model.FilterColumn,
		Column:   column,
		Operator: model.OpIs,
		Negate:   nt.Nulltesttype == pg_query.NullTestType_IS_NOT_NULL,
		Value:    &value,
	}, nil
}

func lowerAExpr(ae *pg_query.A_Expr) (*model.Filter, error) {
	switch ae.Kind {
	case pg_query.A_Expr_Kind_AEXPR_BETWEEN, pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN,
		pg_query.A_Expr_Kind_AEXPR_BETWEEN_SYM, pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN_SYM:
		return lowerBetween(ae)
	case pg_query.A_Expr_Kind_AEXPR_IN:
		return lowerIn(ae)
	case pg_query.A_Expr_Kind_AEXPR_LIKE:
		return lowerLikeIlike(ae, mapping.KindLike)
	case pg_query.A_Expr_Kind_AEXPR_ILIKE:
		return lowerLikeIlike(ae, mapping.KindIlike)
	case pg_query.A_Expr_Kind_AEXPR_OP:
		return lowerOp(ae)
	default:
		return nil, errors.Unsupportedf("unsupported WHERE operator expression")
	}
}

func lowerOp(ae *pg_query.A_Expr) (*model.Filter, error) {
	symbol := operatorSymbol(ae)
	if symbol == "@@" {
		return lowerFullTextSearch(ae)
	}

	op, negate, ok := mapping.Operator(mapping.KindOp, symbol)
	if !ok {
		return nil, errors.Unsupportedf("operator %q is not supported", symbol)
	}
	column, err := lowerFilterColumn(ae.Lexpr)
	if err != nil {
		return nil, err
	}
	value, ok := scalarValue(ae.Rexpr)
	if !ok {
		return nil, errors.UnsupportedHintf(valueQuoteHint, "right-hand side of %q must be a constant", symbol)
	}
	return &model.Filter{Kind: model.FilterColumn, Column: column, Operator: op, Negate: negate, Value: &value}, nil
}

func lowerLikeIlike(ae *pg_query.A_Expr, kind mapping.ExprKind) (*model.Filter, error) {
	symbol := operatorSymbol(ae)
	op, negate, ok := mapping.Operator(kind, symbol)
	if !ok {
		return nil, errors.Unsupportedf("operator %q is not supported", symbol)
	}
	column, err := lowerFilterColumn(ae.Lexpr)
	if err != nil {
		return nil, err
	}
	value, ok := scalarValue(ae.Rexpr)
	if !ok || value.Kind != model.ValueString {
		return nil, errors.Unsupportedf("right-hand side of %q must be a string constant", symbol)
	}
	return &model.Filter{Kind: model.FilterColumn, Column: column, Operator: op, Negate: negate, Value: &value}, nil
}

func lowerIn(ae *pg_query.A_Expr) (*model.Filter, error) {
	symbol := operatorSymbol(ae)
	op, negate, ok := mapping.Operator(mapping.KindIn, symbol)
	if !ok {
		return nil, errors.Unsupportedf("operator %q is not supported for IN", symbol)
	}
	column, err := lowerFilterColumn(ae.Lexpr)
	if err != nil {
		return nil, err
	}
	list := ae.Rexpr.GetList()
	if list == nil {
		return nil, errors.Unsupportedf("right-hand side of IN must be a list of constants")
	}
	values := make([]model.Value, 0, len(list.Items))
	for _, item := range list.Items {
		v, ok := scalarValue(item)
		if !ok {
			return nil, errors.Unsupportedf("IN list items must be constants")
		}
		values = append(values, v)
	}
	return &model.Filter{Kind: model.FilterColumn, Column: column, Operator: op, Negate: negate, Values: values}, nil
}

func lowerBetween(ae *pg_query.A_Expr) (*model.Filter, error) {
	negate := ae.Kind == pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN || ae.Kind == pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN_SYM
	symmetric := ae.Kind == pg_query.A_Expr_Kind_AEXPR_BETWEEN_SYM || ae.Kind == pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN_SYM

	column, err := lowerFilterColumn(ae.Lexpr)
	if err != nil {
		return nil, err
	}
	list := ae.Rexpr.GetList()
	if list == nil || len(list.Items) != 2 {
		return nil, errors.Unsupportedf("BETWEEN requires exactly two bounds")
	}
	low, ok := scalarValue(list.Items[0])
	if !ok {
		return nil, errors.Unsupportedf("BETWEEN bounds must be constants")
	}
	high, ok := scalarValue(list.Items[1])
	if !ok {
		return nil, errors.Unsupportedf("BETWEEN bounds must be constants")
	}

	if symmetric {
		lowNum, lok := numericValue(low)
		highNum, hok := numericValue(high)
		if !lok || !hok {
			return nil, errors.Unsupportedf("BETWEEN SYMMETRIC bounds must be numeric")
		}
		if lowNum > highNum {
			low, high = high, low
		}
	}

	gte := model.Filter{Kind: model.FilterColumn, Column: column, Operator: model.OpGte, Value: &low}
	lte := model.Filter{Kind: model.FilterColumn, Column: column, Operator: model.OpLte, Value: &high}
	return &model.Filter{Kind: model.FilterLogical, LogicalOp: model.And, Negate: negate, Children: []model.Filter{gte, lte}}, nil
}

func lowerFullTextSearch(ae *pg_query.A_Expr) (*model.Filter, error) {
	column, err := lowerFtsColumn(ae.Lexpr)
	if err != nil {
		return nil, err
	}
	fc := ae.Rexpr.GetFuncCall()
	if fc == nil {
		return nil, errors.Unsupportedf("right-hand side of @@ must be a text-search function call")
	}
	fnName := lastFuncName(fc.Funcname)
	op, ok := mapping.FtsOperator(fnName)
	if !ok {
		return nil, errors.Unsupportedf("unsupported text-search function %q", fnName)
	}
	if len(fc.Args) < 1 || len(fc.Args) > 2 {
		return nil, errors.Unsupportedf("%s takes 1 or 2 arguments", fnName)
	}

	var config string
	queryNode := fc.Args[0]
	if len(fc.Args) == 2 {
		cfg, ok := scalarValue(fc.Args[0])
		if !ok || cfg.Kind != model.ValueString {
			return nil, errors.Unsupportedf("text-search config must be a string constant")
		}
		config = cfg.Text
		queryNode = fc.Args[1]
	}
	query, ok := scalarValue(queryNode)
	if !ok || query.Kind != model.ValueString {
		return nil, errors.Unsupportedf("text-search query must be a string constant")
	}
	return &model.Filter{Kind: model.FilterColumn, Column: column, Operator: op, Value: &query, Config: config}, nil
}

// lowerFilterColumn lowers the left-hand side of a WHERE comparison: a
// column reference or JSON-path chain, combined with its relation prefix
// (if any) into a single dotted name — WHERE filters are not routed
// against the relations environment the way projections are (§4.3), so the
// prefix stays part of the column string verbatim.
func lowerFilterColumn(node *pg_query.Node) (string, error) {
	if node.GetTypeCast() != nil {
		return "", errors.Unsupportedf("casting is not supported in WHERE")
	}
	relation, column, err := columnExpr(node)
	if err != nil {
		return "", err
	}
	if relation == "" {
		return column, nil
	}
	return relation + "." + column, nil
}

func lowerFtsColumn(node *pg_query.Node) (string, error) {
	if fc := node.GetFuncCall(); fc != nil {
		name := lastFuncName(fc.Funcname)
		if strings.ToLower(name) != "to_tsvector" || len(fc.Args) != 1 {
			return "", errors.Unsupportedf("left-hand side of @@ must be a column or to_tsvector(column)")
		}
		return lowerFilterColumn(fc.Args[0])
	}
	return lowerFilterColumn(node)
}

func lastFuncName(funcname []*pg_query.Node) string {
	if len(funcname) == 0 {
		return ""
	}
	s := funcname[len(funcname)-1].GetString_()
	if s == nil {
		return ""
	}
	return strings.ToLower(s.Sval)
}
