package render

import (
	"strings"

	"github.com/pgrest-dev/pgrest/engine/model"
)

// TargetList renders a top-level Target slice using PostgREST's target-list
// syntax (SPEC_FULL.md §6), shared by the HTTP renderer's `select=` value
// and the client-code renderer's `.select(...)` argument. IsBareStar
// reports the "select * from t" special case (SPEC_FULL.md §8 scenario 2)
// where the renderer omits the select parameter/call entirely.
func TargetList(targets []model.Target) string {
	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		parts = append(parts, renderTarget(t))
	}
	return strings.Join(parts, ",")
}

// IsBareStar reports whether targets is exactly the unadorned "*" column.
func IsBareStar(targets []model.Target) bool {
	if len(targets) != 1 {
		return false
	}
	t := targets[0]
	return t.Kind == model.TargetColumn && t.Column == "*" && t.Alias == "" && t.Cast == ""
}

func renderTarget(t model.Target) string {
	switch t.Kind {
	case model.TargetColumn:
		return renderColumnTarget(t)
	case model.TargetAggregate:
		return renderAggregateTarget(t)
	case model.TargetEmbedded:
		return renderEmbeddedTarget(t)
	default:
		return ""
	}
}

func renderColumnTarget(t model.Target) string {
	s := t.Column
	if t.Cast != "" {
		s += "::" + t.Cast
	}
	if t.Alias != "" {
		s = t.Alias + ":" + s
	}
	return s
}

func renderAggregateTarget(t model.Target) string {
	col := t.Column
	if t.InputCast != "" {
		col += "::" + t.InputCast
	}
	var s string
	if col == "" {
		s = string(t.Function) + "()"
	} else {
		s = col + "." + string(t.Function) + "()"
	}
	if t.OutputCast != "" {
		s += "::" + t.OutputCast
	}
	if t.Alias != "" {
		s = t.Alias + ":" + s
	}
	return s
}

func renderEmbeddedTarget(t model.Target) string {
	children := TargetList(t.Targets)
	name := t.Relation
	if t.Join == model.InnerJoin {
		name += "!inner"
	}
	s := name + "(" + children + ")"
	if t.Flatten {
		// Spread embedding silently drops any alias (SPEC_FULL.md §9
		// design notes) — PostgREST's "...relation(...)" form has no slot
		// for one.
		return "..." + s
	}
	if t.Alias != "" {
		return t.Alias + ":" + s
	}
	return s
}
