package render

import (
	"strings"

	"github.com/pgrest-dev/pgrest/engine/model"
)

// BuildParams renders a Filter tree into HTTP query parameters (SPEC_FULL.md
// §6). A top-level, non-negated `and` is flattened into sibling parameters
// rather than a single `and(...)` composite — every other logical shape
// becomes one `[not.]operator=(...)` parameter, and a column filter becomes
// one `column=[not.]op.value` parameter.
func BuildParams(f *model.Filter, urlSafe bool) ([]Param, error) {
	if f == nil {
		return nil, nil
	}
	if f.Kind == model.FilterLogical && f.LogicalOp == model.And && !f.Negate {
		var params []Param
		for i := range f.Children {
			childParams, err := BuildParams(&f.Children[i], urlSafe)
			if err != nil {
				return nil, err
			}
			params = append(params, childParams...)
		}
		return params, nil
	}
	if f.Kind == model.FilterLogical {
		key := logicalKey(*f)
		value, err := renderLogicalChildren(f.Children, urlSafe)
		if err != nil {
			return nil, err
		}
		return []Param{{Key: key, Value: value}}, nil
	}
	value, err := renderFilterValue(*f, urlSafe)
	if err != nil {
		return nil, err
	}
	return []Param{{Key: f.Column, Value: value}}, nil
}

func logicalKey(f model.Filter) string {
	if f.Negate {
		return "not." + string(f.LogicalOp)
	}
	return string(f.LogicalOp)
}

// renderFilterChild renders one logical-filter child using the "key-then-
// value concatenated" form (SPEC_FULL.md §6): "col.eq.v" for a column
// filter, "op(child1,child2)" for a nested logical.
func renderFilterChild(f model.Filter, urlSafe bool) (string, error) {
	if f.Kind == model.FilterLogical {
		key := logicalKey(f)
		value, err := renderLogicalChildren(f.Children, urlSafe)
		if err != nil {
			return "", err
		}
		return key + value, nil
	}
	value, err := renderFilterValue(f, urlSafe)
	if err != nil {
		return "", err
	}
	return f.Column + "." + value, nil
}

func renderLogicalChildren(children []model.Filter, urlSafe bool) (string, error) {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		s, err := renderFilterChild(c, urlSafe)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}

// renderFilterValue renders a ColumnFilter's "[not.]op.value" portion.
func renderFilterValue(f model.Filter, urlSafe bool) (string, error) {
	prefix := ""
	if f.Negate {
		prefix = "not."
	}

	switch f.Operator {
	case model.OpIn:
		items := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			items = append(items, renderInItem(v))
		}
		return prefix + "in.(" + strings.Join(items, ",") + ")", nil

	case model.OpFts, model.OpPlfts, model.OpPhfts, model.OpWfts:
		op := string(f.Operator)
		if f.Config != "" {
			op += "(" + f.Config + ")"
		}
		return prefix + op + "." + f.Value.Text, nil

	case model.OpLike, model.OpIlike:
		val := f.Value.Text
		if urlSafe {
			val = strings.ReplaceAll(val, "%", "*")
		}
		return prefix + string(f.Operator) + "." + val, nil

	case model.OpIs:
		return prefix + "is.null", nil

	default:
		return prefix + string(f.Operator) + "." + f.Value.Text, nil
	}
}

func renderInItem(v model.Value) string {
	if v.Kind == model.ValueString && strings.Contains(v.Text, ",") {
		return `"` + v.Text + `"`
	}
	return v.Text
}
