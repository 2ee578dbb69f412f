package lower

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// LowerLimit lowers LIMIT/OFFSET (SPEC_FULL.md §4.7). Presence is decided by
// node-pointer nilness, not by the parsed value — an explicit "LIMIT 0"
// carries a non-nil countNode with value 0, which must normalise to a
// present Limit.Count pointing at 0, never to an absent Limit.
func LowerLimit(countNode, offsetNode *pg_query.Node) (*model.Limit, error) {
	var count, offset *int
	if countNode != nil {
		v, err := constInt(countNode)
		if err != nil {
			return nil, err
		}
		count = &v
	}
	if offsetNode != nil {
		v, err := constInt(offsetNode)
		if err != nil {
			return nil, err
		}
		offset = &v
	}
	if count == nil && offset == nil {
		return nil, nil
	}
	return &model.Limit{Count: count, Offset: offset}, nil
}

func constInt(node *pg_query.Node) (int, error) {
	c := node.GetAConst()
	if c == nil {
		return 0, errors.Unsupportedf("LIMIT/OFFSET must be an integer constant")
	}
	iv := c.GetIval()
	if iv == nil {
		return 0, errors.Unsupportedf("LIMIT/OFFSET must be an integer constant")
	}
	return int(iv.Ival), nil
}
