package pgrest

import (
	"testing"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/render"
)

func TestRenderHTTP_EndToEnd(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "filter, order, limit and offset",
			sql:  `select title, description from books where description ilike '%cheese%' order by title desc limit 5 offset 10`,
			want: `/books?select=title,description&description=ilike.*cheese*&order=title.desc&limit=5&offset=10`,
		},
		{
			name: "bare star omits the select parameter",
			sql:  `select * from books`,
			want: `/books`,
		},
		{
			name: "bare aggregate",
			sql:  `select count() from books`,
			want: `/books?select=count()`,
		},
		{
			name: "inner join embeds as a spread target",
			sql:  `select a.title, b.name from books a inner join authors b on a.author_id = b.id`,
			want: `/books?select=title,...authors!inner(name)`,
		},
		{
			name: "negated null test and an or group flatten as siblings",
			sql:  `select * from books where id is not null and (rating > 4 or title ilike '%foo%')`,
			want: `/books?id=not.is.null&or=(rating.gt.4,title.ilike.*foo*)`,
		},
		{
			name: "group by with every column projected",
			sql:  `select genre, count() from books group by genre`,
			want: `/books?select=genre,count()`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := RenderHTTP(tt.sql, render.Options{URLSafe: true})
			if err != nil {
				t.Fatalf("RenderHTTP(%q) returned error: %v", tt.sql, err)
			}
			if req.FullPath != tt.want {
				t.Errorf("RenderHTTP(%q).FullPath = %q, want %q", tt.sql, req.FullPath, tt.want)
			}
		})
	}
}

func TestRenderHTTP_GroupByRequiresProjectedColumn(t *testing.T) {
	_, err := RenderHTTP(`select count() from books group by genre`, render.Options{URLSafe: true})
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !errors.Is(err, errors.Unsupported) {
		t.Fatalf("expected an Unsupported error, got %v", err)
	}
	want := "Every group by column must also exist as a select target."
	e, ok := err.(*errors.Error)
	if !ok || e.Message != want {
		t.Fatalf("expected message %q, got %v", want, err)
	}
}

func TestTranslate_RejectsNonSelect(t *testing.T) {
	_, err := Translate(`insert into books (title) values ('x')`)
	if !errors.Is(err, errors.Unimplemented) {
		t.Fatalf("expected an Unimplemented error, got %v", err)
	}
}
