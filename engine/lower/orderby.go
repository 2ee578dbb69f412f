package lower

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// LowerOrderBy lowers the ORDER BY list (SPEC_FULL.md §4.6). The rendered
// parenthesis-syntax requirement for relation-qualified columns under
// ORDER BY is a render-time concern (engine/render), not a lowering
// concern — Sort.Relation/Sort.Column are stored separately so a JSON-path
// Column's own literal "." can never be mistaken for a relation qualifier.
func LowerOrderBy(sortClause []*pg_query.Node) ([]model.Sort, error) {
	sorts := make([]model.Sort, 0, len(sortClause))
	for _, n := range sortClause {
		sb := n.GetSortBy()
		if sb == nil {
			return nil, errors.Unsupportedf("unsupported ORDER BY item")
		}
		if sb.Node.GetTypeCast() != nil {
			return nil, errors.Unsupportedf("casting is not supported in ORDER BY")
		}
		relation, column, err := columnExpr(sb.Node)
		if err != nil {
			return nil, err
		}
		dir, err := mapSortDir(sb.SortbyDir)
		if err != nil {
			return nil, err
		}
		nulls, err := mapSortNulls(sb.SortbyNulls)
		if err != nil {
			return nil, err
		}
		sorts = append(sorts, model.Sort{Relation: relation, Column: column, Direction: dir, Nulls: nulls})
	}
	return sorts, nil
}

func mapSortDir(d pg_query.SortByDir) (model.SortDirection, error) {
	switch d {
	case pg_query.SortByDir_SORTBY_DEFAULT:
		return "", nil
	case pg_query.SortByDir_SORTBY_ASC:
		return model.Asc, nil
	case pg_query.SortByDir_SORTBY_DESC:
		return model.Desc, nil
	default:
		return "", errors.Unsupportedf("unsupported sort direction")
	}
}

func mapSortNulls(n pg_query.SortByNulls) (model.NullsOrder, error) {
	switch n {
	case pg_query.SortByNulls_SORTBY_NULLS_DEFAULT:
		return "", nil
	case pg_query.SortByNulls_SORTBY_NULLS_FIRST:
		return model.NullsFirst, nil
	case pg_query.SortByNulls_SORTBY_NULLS_LAST:
		return model.NullsLast, nil
	default:
		return "", errors.Unsupportedf("unsupported NULLS ordering")
	}
}
