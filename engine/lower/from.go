package lower

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// LowerFrom lowers the single FROM-list element into a relations
// environment (SPEC_FULL.md §4.2). Callers (statement.go) are responsible
// for rejecting a FROM list that does not have exactly one element, and for
// rejecting WITH/DISTINCT/HAVING before calling in — those are properties
// of the enclosing SelectStmt, not of the FROM node itself.
func LowerFrom(node *pg_query.Node) (*Env, error) {
	if rv := node.GetRangeVar(); rv != nil {
		return &Env{Primary: relationOf(rv)}, nil
	}
	if je := node.GetJoinExpr(); je != nil {
		return lowerJoin(je)
	}
	return nil, errors.Unsupportedf("FROM clause must be a table or join")
}

func relationOf(rv *pg_query.RangeVar) Relation {
	r := Relation{Name: rv.Relname}
	if rv.Alias != nil {
		r.Alias = rv.Alias.Aliasname
	}
	return r
}

func lowerJoin(je *pg_query.JoinExpr) (*Env, error) {
	env, err := LowerFrom(je.Larg)
	if err != nil {
		return nil, err
	}

	rv := je.Rarg.GetRangeVar()
	if rv == nil {
		return nil, errors.Unsupportedf("the right-hand side of a join must be a single table")
	}
	joined := relationOf(rv)

	joinType, ok := mapJoinType(je.Jointype)
	if !ok {
		return nil, errors.Unsupportedf("join type %s is not supported", je.Jointype.String())
	}

	left, right, err := lowerJoinQualifier(je.Quals, env, joined)
	if err != nil {
		return nil, err
	}

	env.Joined = append(env.Joined, model.Target{
		Kind:          model.TargetEmbedded,
		Relation:      joined.Name,
		Alias:         joined.Alias,
		Join:          joinType,
		Flatten:       true,
		JoinedColumns: model.JoinedColumns{Left: left, Right: right},
	})
	return env, nil
}

func mapJoinType(jt pg_query.JoinType) (model.JoinType, bool) {
	switch jt {
	case pg_query.JoinType_JOIN_INNER:
		return model.InnerJoin, true
	case pg_query.JoinType_JOIN_LEFT:
		return model.LeftJoin, true
	default:
		return "", false
	}
}

// lowerJoinQualifier validates and canonicalizes the ON clause of a join
// (SPEC_FULL.md §4.2): it must be a single `=` comparison between two
// qualified column references, each naming a relation already known to env
// or the newly joined relation, exactly one of which must be the newly
// joined relation. The return value always has Left as the parent side and
// Right as the joined relation's side, independent of how the user wrote it.
func lowerJoinQualifier(quals *pg_query.Node, env *Env, joined Relation) (model.ColumnRef, model.ColumnRef, error) {
	var zero model.ColumnRef
	if quals == nil {
		return zero, zero, errors.Unsupportedf("join %s must have an ON condition", joined.Name)
	}
	aexpr := quals.GetAExpr()
	if aexpr == nil || aexpr.Kind != pg_query.A_Expr_Kind_AEXPR_OP || operatorSymbol(aexpr) != "=" {
		return zero, zero, errors.Unsupportedf("join qualifier for %s must be a single equality comparison", joined.Name)
	}

	leftSide, ok := qualifiedColumnRef(aexpr.Lexpr)
	if !ok {
		return zero, zero, errors.Unsupportedf("join qualifier for %s must compare two qualified columns", joined.Name)
	}
	rightSide, ok := qualifiedColumnRef(aexpr.Rexpr)
	if !ok {
		return zero, zero, errors.Unsupportedf("join qualifier for %s must compare two qualified columns", joined.Name)
	}

	joinedRef := joined.Reference()
	leftIsJoined := leftSide.Relation == joinedRef
	rightIsJoined := rightSide.Relation == joinedRef

	if leftSide.Relation == rightSide.Relation {
		return zero, zero, errors.Unsupportedf("join qualifier for %s cannot compare a relation to itself", joined.Name)
	}
	if leftIsJoined == rightIsJoined {
		return zero, zero, errors.Unsupportedf("join qualifier must reference a column from the joined table %s", joined.Name)
	}

	var parentSide, joinedSide model.ColumnRef
	if leftIsJoined {
		parentSide, joinedSide = rightSide, leftSide
	} else {
		parentSide, joinedSide = leftSide, rightSide
	}

	if !env.HasReference(parentSide.Relation) {
		return zero, zero, errors.Unsupportedf("join qualifier references unknown relation %q", parentSide.Relation)
	}

	return parentSide, joinedSide, nil
}

// qualifiedColumnRef extracts a two-part relation.column reference; an
// unqualified or deeper-qualified ColumnRef is not a valid join side.
func qualifiedColumnRef(node *pg_query.Node) (model.ColumnRef, bool) {
	cr := node.GetColumnRef()
	if cr == nil || len(cr.Fields) != 2 {
		return model.ColumnRef{}, false
	}
	relation := cr.Fields[0].GetString_()
	column := cr.Fields[1].GetString_()
	if relation == nil || column == nil {
		return model.ColumnRef{}, false
	}
	return model.ColumnRef{Relation: relation.Sval, Column: column.Sval}, true
}

func operatorSymbol(expr *pg_query.A_Expr) string {
	if len(expr.Name) == 0 {
		return ""
	}
	if s := expr.Name[0].GetString_(); s != nil {
		return s.Sval
	}
	return ""
}
