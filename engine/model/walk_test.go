package model

import "testing"

func TestFlattenTargets(t *testing.T) {
	targets := []Target{
		{Kind: TargetColumn, Column: "title"},
		{
			Kind:     TargetEmbedded,
			Relation: "authors",
			Targets: []Target{
				{Kind: TargetColumn, Column: "name"},
			},
		},
	}

	flat := FlattenTargets(targets)
	if len(flat) != 3 {
		t.Fatalf("got %d targets, want 3: %+v", len(flat), flat)
	}
	if flat[0].Column != "title" || flat[1].Relation != "authors" || flat[2].Column != "name" {
		t.Errorf("unexpected flatten order: %+v", flat)
	}
}

func TestSomeTarget(t *testing.T) {
	targets := []Target{
		{Kind: TargetColumn, Column: "title"},
		{
			Kind:     TargetEmbedded,
			Relation: "authors",
			Targets: []Target{
				{Kind: TargetAggregate, Function: Count},
			},
		},
	}
	if !SomeTarget(targets, func(t Target) bool { return t.Kind == TargetAggregate }) {
		t.Error("expected SomeTarget to find the nested aggregate")
	}
	if SomeTarget(targets, func(t Target) bool { return t.Column == "missing" }) {
		t.Error("expected SomeTarget to report false for an absent column")
	}
}

func TestFlattenFilters(t *testing.T) {
	f := &Filter{
		Kind:      FilterLogical,
		LogicalOp: And,
		Children: []Filter{
			{Kind: FilterColumn, Column: "id", Operator: OpEq, Value: &Value{Kind: ValueNumber, Text: "1"}},
			{Kind: FilterColumn, Column: "title", Operator: OpEq, Value: &Value{Kind: ValueString, Text: "x"}},
		},
	}
	flat := FlattenFilters(f)
	if len(flat) != 3 {
		t.Fatalf("got %d filters, want 3: %+v", len(flat), flat)
	}
	if flat[0].Kind != FilterLogical || flat[1].Column != "id" || flat[2].Column != "title" {
		t.Errorf("unexpected flatten order: %+v", flat)
	}
}
