package render

import (
	"testing"

	"github.com/pgrest-dev/pgrest/engine/model"
)

func TestClientCode_SelectFilterOrderLimit(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From:    "books",
			Targets: []model.Target{{Kind: model.TargetColumn, Column: "title"}},
			Filter: &model.Filter{
				Kind: model.FilterColumn, Column: "rating", Operator: model.OpGt,
				Value: &model.Value{Kind: model.ValueNumber, Text: "4"},
			},
			Sorts: []model.Sort{{Column: "title", Direction: model.Desc}},
			Limit: &model.Limit{Count: intPtr(5)},
		},
	}

	got, err := ClientCode(stmt)
	if err != nil {
		t.Fatalf("ClientCode returned error: %v", err)
	}
	want := "from('books').select('title').gt('rating', '4').order('title.desc').limit(5)"
	if got != want {
		t.Errorf("ClientCode = %q, want %q", got, want)
	}
}

func TestClientCode_NegatedColumnFilterUsesNot(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From:    "books",
			Targets: []model.Target{{Kind: model.TargetColumn, Column: "*"}},
			Filter: &model.Filter{
				Kind: model.FilterColumn, Column: "id", Operator: model.OpIs, Negate: true,
				Value: &model.Value{Kind: model.ValueNull},
			},
		},
	}
	got, err := ClientCode(stmt)
	if err != nil {
		t.Fatalf("ClientCode returned error: %v", err)
	}
	want := "from('books').not('id', 'is', 'null')"
	if got != want {
		t.Errorf("ClientCode = %q, want %q", got, want)
	}
}

func TestClientCode_OffsetWithoutCountIsARenderError(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From:    "books",
			Targets: []model.Target{{Kind: model.TargetColumn, Column: "*"}},
			Limit:   &model.Limit{Offset: intPtr(10)},
		},
	}
	_, err := ClientCode(stmt)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestClientCode_RangeUsesOffsetAndCount(t *testing.T) {
	stmt := &model.Statement{
		Select: &model.Select{
			From:    "books",
			Targets: []model.Target{{Kind: model.TargetColumn, Column: "*"}},
			Limit:   &model.Limit{Count: intPtr(5), Offset: intPtr(10)},
		},
	}
	got, err := ClientCode(stmt)
	if err != nil {
		t.Fatalf("ClientCode returned error: %v", err)
	}
	want := "from('books').range(10, 14)"
	if got != want {
		t.Errorf("ClientCode = %q, want %q", got, want)
	}
}
