package render

import (
	"testing"

	"github.com/pgrest-dev/pgrest/engine/model"
)

func intPtr(i int) *int { return &i }

func TestRenderHTTP_SelectFilterOrderLimit(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From: "books",
			Targets: []model.Target{
				{Kind: model.TargetColumn, Column: "title"},
				{Kind: model.TargetColumn, Column: "description"},
			},
			Filter: &model.Filter{
				Kind:     model.FilterColumn,
				Column:   "description",
				Operator: model.OpIlike,
				Value:    &model.Value{Kind: model.ValueString, Text: "%cheese%"},
			},
			Sorts: []model.Sort{{Column: "title", Direction: model.Desc}},
			Limit: &model.Limit{Count: intPtr(5), Offset: intPtr(10)},
		},
	}

	req, err := RenderHTTP(stmt, Options{URLSafe: true})
	if err != nil {
		t.Fatalf("RenderHTTP returned error: %v", err)
	}
	want := "/books?select=title,description&description=ilike.*cheese*&order=title.desc&limit=5&offset=10"
	if req.FullPath != want {
		t.Errorf("FullPath = %q, want %q", req.FullPath, want)
	}
}

func TestRenderHTTP_BareStarOmitsSelect(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From:    "books",
			Targets: []model.Target{{Kind: model.TargetColumn, Column: "*"}},
		},
	}
	req, err := RenderHTTP(stmt, Options{URLSafe: true})
	if err != nil {
		t.Fatalf("RenderHTTP returned error: %v", err)
	}
	if req.FullPath != "/books" {
		t.Errorf("FullPath = %q, want /books", req.FullPath)
	}
}

func TestRenderOrder_QualifiedColumnUsesParenthesisSyntax(t *testing.T) {
	sorts := []model.Sort{{Relation: "authors", Column: "name", Direction: model.Asc, Nulls: model.NullsLast}}
	got := RenderOrder(sorts)
	want := "authors(name).asc.nullslast"
	if got != want {
		t.Errorf("RenderOrder = %q, want %q", got, want)
	}
}

func TestRenderOrder_UnqualifiedJSONPathColumnWithLiteralDotIsNotMisreadAsQualified(t *testing.T) {
	sorts := []model.Sort{{Column: "meta->'first.name'", Direction: model.Asc}}
	got := RenderOrder(sorts)
	want := "meta->'first.name'.asc"
	if got != want {
		t.Errorf("RenderOrder = %q, want %q", got, want)
	}
}

func TestBuildParams_TopLevelAndFlattensToSiblings(t *testing.T) {
	f := &model.Filter{
		Kind:      model.FilterLogical,
		LogicalOp: model.And,
		Children: []model.Filter{
			{
				Kind: model.FilterColumn, Column: "id", Operator: model.OpIs, Negate: true,
				Value: &model.Value{Kind: model.ValueNull},
			},
			{
				Kind: model.FilterLogical, LogicalOp: model.Or,
				Children: []model.Filter{
					{Kind: model.FilterColumn, Column: "rating", Operator: model.OpGt, Value: &model.Value{Kind: model.ValueNumber, Text: "4"}},
					{Kind: model.FilterColumn, Column: "title", Operator: model.OpIlike, Value: &model.Value{Kind: model.ValueString, Text: "%foo%"}},
				},
			},
		},
	}

	params, err := BuildParams(f, true)
	if err != nil {
		t.Fatalf("BuildParams returned error: %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2: %+v", len(params), params)
	}
	if params[0].Key != "id" || params[0].Value != "not.is.null" {
		t.Errorf("params[0] = %+v, want id=not.is.null", params[0])
	}
	if params[1].Key != "or" || params[1].Value != "(rating.gt.4,title.ilike.*foo*)" {
		t.Errorf("params[1] = %+v, want or=(rating.gt.4,title.ilike.*foo*)", params[1])
	}
}

func TestBuildParams_InListQuotesCommaContainingItems(t *testing.T) {
	f := &model.Filter{
		Kind: model.FilterColumn, Column: "genre", Operator: model.OpIn,
		Values: []model.Value{
			{Kind: model.ValueString, Text: "scifi"},
			{Kind: model.ValueString, Text: "a,b"},
		},
	}
	params, err := BuildParams(f, true)
	if err != nil {
		t.Fatalf("BuildParams returned error: %v", err)
	}
	want := `in.(scifi,"a,b")`
	if params[0].Value != want {
		t.Errorf("value = %q, want %q", params[0].Value, want)
	}
}
