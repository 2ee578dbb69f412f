package lower

import (
	"strconv"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// jsonPathHint is attached whenever a JSON-path chain's leaf is not a
// string/int constant — almost always the user forgot to quote a path key.
const jsonPathHint = "Did you forget to quote a JSON path?"

// columnExpr lowers a column reference or a ->/->> JSON-path chain rooted
// in one, returning the relation prefix (empty when unqualified) and the
// verbatim column text PostgREST expects (e.g. "meta->'a'->>'b'"). The
// relation prefix is read off the root ColumnRef only, never by splitting
// the rendered text, so a quoted JSON key containing "." never confuses
// routing.
func columnExpr(node *pg_query.Node) (relation, column string, err error) {
	if cr := node.GetColumnRef(); cr != nil {
		return columnRefParts(cr)
	}
	if ae := node.GetAExpr(); ae != nil && ae.Kind == pg_query.A_Expr_Kind_AEXPR_OP {
		op := operatorSymbol(ae)
		if op == "->" || op == "->>" {
			relation, left, err := columnExpr(ae.Lexpr)
			if err != nil {
				return "", "", err
			}
			leaf, err := jsonPathLeaf(ae.Rexpr)
			if err != nil {
				return "", "", err
			}
			return relation, left + op + leaf, nil
		}
	}
	return "", "", errors.Unsupportedf("expressions are not supported as targets")
}

func columnRefParts(cr *pg_query.ColumnRef) (relation, column string, err error) {
	var parts []string
	for _, f := range cr.Fields {
		if s := f.GetString_(); s != nil {
			parts = append(parts, s.Sval)
			continue
		}
		if f.GetAStar() != nil {
			parts = append(parts, "*")
			continue
		}
		return "", "", errors.Unsupportedf("unsupported column reference segment")
	}
	switch len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", errors.Unsupportedf("column reference %q is too deeply qualified", strings.Join(parts, "."))
	}
}

func jsonPathLeaf(node *pg_query.Node) (string, error) {
	c := node.GetAConst()
	if c == nil {
		return "", errors.UnsupportedHintf(jsonPathHint, "JSON path segment must be a string or integer constant")
	}
	if sv := c.GetSval(); sv != nil {
		return "'" + sv.Sval + "'", nil
	}
	if iv := c.GetIval(); iv != nil {
		return strconv.Itoa(int(iv.Ival)), nil
	}
	return "", errors.UnsupportedHintf(jsonPathHint, "JSON path segment must be a string or integer constant")
}

// scalarValue lowers an A_Const to a model.Value; only string/int/float
// constants are scalar values in this translator's supported surface.
func scalarValue(node *pg_query.Node) (model.Value, bool) {
	c := node.GetAConst()
	if c == nil {
		return model.Value{}, false
	}
	if sv := c.GetSval(); sv != nil {
		return model.Value{Kind: model.ValueString, Text: sv.Sval}, true
	}
	if iv := c.GetIval(); iv != nil {
		return model.Value{Kind: model.ValueNumber, Text: strconv.Itoa(int(iv.Ival))}, true
	}
	if fv := c.GetFval(); fv != nil {
		return model.Value{Kind: model.ValueNumber, Text: fv.Fval}, true
	}
	return model.Value{}, false
}

// numericValue reports whether v is numeric and its parsed float64, used
// only by BETWEEN SYMMETRIC bound-swapping (§4.4).
func numericValue(v model.Value) (float64, bool) {
	if v.Kind != model.ValueNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// typeNameParts extracts a TypeName's dotted Names as plain strings, for
// mapping.CanonicalizeCast.
func typeNameParts(tn *pg_query.TypeName) []string {
	if tn == nil {
		return nil
	}
	parts := make([]string, 0, len(tn.Names))
	for _, n := range tn.Names {
		if s := n.GetString_(); s != nil {
			parts = append(parts, s.Sval)
		}
	}
	return parts
}
