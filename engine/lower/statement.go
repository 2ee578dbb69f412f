package lower

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// Lower is the statement dispatcher (SPEC_FULL.md §4.1, §4.9): it invokes
// the external parser and demands exactly one SELECT statement, the same
// Parse-then-switch-on-Get<Variant>() shape as the teacher's
// PostgreSQLToQuery entry point, narrowed to this translator's single
// supported statement kind.
func Lower(sql string) (*model.Statement, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, wrapParseError(err)
	}

	switch len(tree.Stmts) {
	case 0:
		return nil, errors.Unsupportedf("expected a statement, but received none")
	case 1:
		// fall through
	default:
		return nil, errors.Unsupportedf("expected a single statement, but received multiple")
	}

	stmt := tree.Stmts[0].Stmt
	switch {
	case stmt.GetSelectStmt() != nil:
		sel, err := lowerSelect(stmt.GetSelectStmt())
		if err != nil {
			return nil, err
		}
		return &model.Statement{Select: sel}, nil
	case stmt.GetInsertStmt() != nil:
		return nil, errors.Unimplementedf("INSERT is not yet implemented")
	case stmt.GetUpdateStmt() != nil:
		return nil, errors.Unimplementedf("UPDATE is not yet implemented")
	case stmt.GetDeleteStmt() != nil:
		return nil, errors.Unimplementedf("DELETE is not yet implemented")
	case stmt.GetExplainStmt() != nil:
		return nil, errors.Unimplementedf("EXPLAIN is not yet implemented")
	default:
		return nil, errors.Unsupportedf("unsupported statement type")
	}
}

func wrapParseError(err error) error {
	e := errors.ParsingError(err)
	if hint := hintForParserMessage(err.Error()); hint != "" {
		return e.WithHint(hint)
	}
	return e
}

func lowerSelect(sel *pg_query.SelectStmt) (*model.Select, error) {
	if sel.Op != pg_query.SetOperation_SETOP_NONE {
		return nil, errors.Unsupportedf("set operations (UNION/INTERSECT/EXCEPT) are not supported")
	}
	if len(sel.FromClause) != 1 {
		return nil, errors.Unsupportedf("SELECT must have exactly one FROM source")
	}
	if sel.WithClause != nil {
		return nil, errors.Unsupportedf("WITH (CTEs) is not supported")
	}
	if len(sel.DistinctClause) > 0 {
		return nil, errors.Unsupportedf("DISTINCT is not supported")
	}
	if sel.HavingClause != nil {
		return nil, errors.Unsupportedf("HAVING is not supported")
	}

	env, err := LowerFrom(sel.FromClause[0])
	if err != nil {
		return nil, err
	}

	targets, err := LowerProjection(sel.TargetList, env)
	if err != nil {
		return nil, err
	}

	if err := ValidateGroupBy(sel.GroupClause, env, targets); err != nil {
		return nil, err
	}

	filter, err := LowerWhere(sel.WhereClause)
	if err != nil {
		return nil, err
	}

	sorts, err := LowerOrderBy(sel.SortClause)
	if err != nil {
		return nil, err
	}
	primaryRef := env.Primary.Reference()
	for i := range sorts {
		if sorts[i].Relation == primaryRef {
			sorts[i].Relation = ""
		}
	}

	limit, err := LowerLimit(sel.LimitCount, sel.LimitOffset)
	if err != nil {
		return nil, err
	}

	return &model.Select{
		From:    env.Primary.Name,
		Targets: targets,
		Filter:  filter,
		Sorts:   sorts,
		Limit:   limit,
	}, nil
}
