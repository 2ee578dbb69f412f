package lower

import (
	"testing"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

func TestLower_RejectsMultipleFromSources(t *testing.T) {
	_, err := Lower(`select * from books, authors`)
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

func TestLower_RejectsCTE(t *testing.T) {
	_, err := Lower(`with recent as (select * from books) select * from recent`)
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

func TestLower_RejectsSetOperations(t *testing.T) {
	_, err := Lower(`select id from books union select id from authors`)
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

func TestLower_UnimplementedStatementKinds(t *testing.T) {
	tests := []string{
		`update books set title = 'x'`,
		`delete from books`,
		`explain select * from books`,
	}
	for _, sql := range tests {
		_, err := Lower(sql)
		if !errors.Is(err, errors.Unimplemented) {
			t.Errorf("Lower(%q): expected Unimplemented, got %v", sql, err)
		}
	}
}

func TestLower_ParseErrorCarriesHint(t *testing.T) {
	_, err := Lower(`select title, from books`)
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.Parsing {
		t.Fatalf("expected a Parsing error, got %v", err)
	}
	if e.Hint == "" {
		t.Error("expected a remediation hint on this trailing-comma parse error")
	}
}

func TestLower_CastAndAlias(t *testing.T) {
	stmt, err := Lower(`select id::text as str_id from books`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	targets := stmt.Select.Targets
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	target := targets[0]
	if target.Column != "id" || target.Cast != "text" || target.Alias != "str_id" {
		t.Errorf("unexpected target: %+v", target)
	}
}

func TestLower_PgCatalogCastSynonym(t *testing.T) {
	// The SQL-standard type name "int" parses to pg_query_go's internal,
	// pg_catalog-qualified name ("int4"); CanonicalizeCast maps it back to
	// the standard spelling this translator emits.
	stmt, err := Lower(`select id::int from books`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	if got := stmt.Select.Targets[0].Cast; got != "int" {
		t.Errorf("Cast = %q, want %q", got, "int")
	}
}

func TestLower_JSONPathColumn(t *testing.T) {
	stmt, err := Lower(`select * from books where meta->>'genre' = 'scifi'`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Kind != model.FilterColumn || f.Column != "meta->>'genre'" {
		t.Errorf("unexpected filter: %+v", f)
	}
}

func TestLower_InListOperator(t *testing.T) {
	stmt, err := Lower(`select * from books where genre in ('scifi', 'fantasy')`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Operator != model.OpIn || len(f.Values) != 2 {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestLower_NotInNegatesWithoutBoolExprWrap(t *testing.T) {
	stmt, err := Lower(`select * from books where genre not in ('scifi')`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Operator != model.OpIn || !f.Negate {
		t.Errorf("expected a negated in filter, got %+v", f)
	}
}

func TestLower_NotLikeNegatesWithoutBoolExprWrap(t *testing.T) {
	stmt, err := Lower(`select * from books where title not like '%x%'`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Operator != model.OpLike || !f.Negate || f.Value.Text != "%x%" {
		t.Errorf("expected a negated like filter, got %+v", f)
	}
}

func TestLower_NotIlikeNegatesWithoutBoolExprWrap(t *testing.T) {
	stmt, err := Lower(`select * from books where title not ilike '%x%'`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Operator != model.OpIlike || !f.Negate || f.Value.Text != "%x%" {
		t.Errorf("expected a negated ilike filter, got %+v", f)
	}
}

func TestLower_BetweenSymmetricSwapsReversedNumericBounds(t *testing.T) {
	stmt, err := Lower(`select * from books where pages between symmetric 300 and 100`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Kind != model.FilterLogical || len(f.Children) != 2 {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.Children[0].Value.Text != "100" || f.Children[1].Value.Text != "300" {
		t.Errorf("expected bounds swapped to (100, 300), got (%s, %s)",
			f.Children[0].Value.Text, f.Children[1].Value.Text)
	}
}

func TestLower_FullTextSearchWithConfig(t *testing.T) {
	stmt, err := Lower(`select * from books where to_tsvector(description) @@ plainto_tsquery('english', 'cheese cake')`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	f := stmt.Select.Filter
	if f.Operator != model.OpPlfts || f.Config != "english" || f.Value.Text != "cheese cake" {
		t.Errorf("unexpected filter: %+v", f)
	}
}

func TestLower_AggregateWithoutColumn(t *testing.T) {
	stmt, err := Lower(`select count() from books`)
	if err != nil {
		t.Fatalf("Lower returned error: %v", err)
	}
	target := stmt.Select.Targets[0]
	if target.Kind != model.TargetAggregate || target.Function != model.Count || target.Column != "" {
		t.Errorf("unexpected target: %+v", target)
	}
}

func TestLower_RejectsCastInWhere(t *testing.T) {
	_, err := Lower(`select * from books where id::text = '5'`)
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

func TestLower_JoinRequiresEqualityQualifier(t *testing.T) {
	_, err := Lower(`select * from books a inner join authors b on a.author_id > b.id`)
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}
