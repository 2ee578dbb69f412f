package render

import (
	"strconv"
	"strings"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
	"github.com/pgrest-dev/pgrest/mapping"
)

// ClientCode renders a lowered Statement as fluent client-library source
// text (SPEC_FULL.md §6): from(table).select(...).{filters}.order(...) plus
// either .limit(n) or .range(offset, offset+n-1).
func ClientCode(stmt *model.Statement) (string, error) {
	if stmt.Select == nil {
		return "", errors.Renderf("client-code", "only SELECT statements can be rendered")
	}
	sel := stmt.Select

	var b strings.Builder
	b.WriteString("from(")
	b.WriteString(quote(sel.From))
	b.WriteString(")")

	if !IsBareStar(sel.Targets) {
		b.WriteString(".select(")
		b.WriteString(quote(TargetList(sel.Targets)))
		b.WriteString(")")
	}

	chain, err := renderClientFilter(sel.Filter)
	if err != nil {
		return "", err
	}
	b.WriteString(chain)

	if len(sel.Sorts) > 0 {
		b.WriteString(".order(")
		b.WriteString(quote(RenderOrder(sel.Sorts)))
		b.WriteString(")")
	}

	if sel.Limit != nil {
		limitCall, err := renderLimit(sel.Limit)
		if err != nil {
			return "", err
		}
		b.WriteString(limitCall)
	}

	return b.String(), nil
}

func renderLimit(l *model.Limit) (string, error) {
	if l.Count == nil {
		return "", errors.Renderf("client-code", "offset without a count has no client-code range() equivalent")
	}
	if l.Offset == nil {
		return ".limit(" + strconv.Itoa(*l.Count) + ")", nil
	}
	from := *l.Offset
	to := from + *l.Count - 1
	return ".range(" + strconv.Itoa(from) + ", " + strconv.Itoa(to) + ")", nil
}

// renderClientFilter walks the Filter tree into a chain of method calls. A
// top-level, non-negated `and` flattens into independent chained calls (one
// per child); every other column filter becomes `.<op>(col, val)` (full-text
// operators `.textSearch(...)`) or, negated, `.not(col, 'op', val)`; every
// other logical shape becomes a single `.or(...)`/`.and(...)` call wrapping
// its children's own key-then-value text, and a negated one becomes a
// single-argument `.or('not.<op>(...)')` call.
func renderClientFilter(f *model.Filter) (string, error) {
	if f == nil {
		return "", nil
	}
	if f.Kind == model.FilterLogical && f.LogicalOp == model.And && !f.Negate {
		var b strings.Builder
		for i := range f.Children {
			s, err := renderClientFilter(&f.Children[i])
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		return b.String(), nil
	}
	if f.Kind == model.FilterLogical {
		return renderClientLogical(*f)
	}
	return renderClientColumn(*f)
}

func renderClientLogical(f model.Filter) (string, error) {
	parts := make([]string, 0, len(f.Children))
	for _, c := range f.Children {
		s, err := renderFilterChild(c, false)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	inner := strings.Join(parts, ",")
	if f.Negate {
		return ".or(" + quote("not."+string(f.LogicalOp)+"("+inner+")") + ")", nil
	}
	call := "." + string(f.LogicalOp) + "(" + quote(inner) + ")"
	return call, nil
}

func renderClientColumn(f model.Filter) (string, error) {
	switch f.Operator {
	case model.OpFts, model.OpPlfts, model.OpPhfts, model.OpWfts:
		return renderClientTextSearch(f)
	}

	// Negation always renders unprefixed here (Negate left false below) since
	// the client call spells it as a wrapping .not(col, op, val) rather than
	// a "not." value prefix.
	value, err := renderFilterValue(model.Filter{
		Kind: model.FilterColumn, Column: f.Column, Operator: f.Operator,
		Value: f.Value, Values: f.Values, Config: f.Config,
	}, false)
	if err != nil {
		return "", err
	}
	op, arg := splitOpValue(value)
	if f.Negate {
		return ".not(" + quote(f.Column) + ", " + quote(op) + ", " + quote(arg) + ")", nil
	}
	return "." + op + "(" + quote(f.Column) + ", " + quote(arg) + ")", nil
}

func splitOpValue(rendered string) (op, value string) {
	idx := strings.IndexByte(rendered, '.')
	if idx < 0 {
		return rendered, ""
	}
	return rendered[:idx], rendered[idx+1:]
}

func renderClientTextSearch(f model.Filter) (string, error) {
	opts := make([]string, 0, 2)
	if typ, ok := mapping.FtsOperatorType(f.Operator); ok {
		opts = append(opts, "type: "+quote(typ))
	}
	if f.Config != "" {
		opts = append(opts, "config: "+quote(f.Config))
	}
	args := quote(f.Column) + ", " + quote(f.Value.Text)
	if len(opts) > 0 {
		args += ", {" + strings.Join(opts, ", ") + "}"
	}
	if f.Negate {
		return ".not(" + quote(f.Column) + ", " + quote(string(f.Operator)) + ", " + quote(f.Value.Text) + ")", nil
	}
	return ".textSearch(" + args + ")", nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
