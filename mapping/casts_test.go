package mapping

import "testing"

func TestCanonicalizeCast(t *testing.T) {
	tests := []struct {
		names []string
		want  string
		wantOK bool
	}{
		{[]string{"text"}, "text", true},
		{[]string{"int4"}, "int4", true},
		{[]string{"pg_catalog", "int4"}, "int", true},
		{[]string{"pg_catalog", "int8"}, "bigint", true},
		{[]string{"pg_catalog", "float8"}, "float", true},
		{[]string{"pg_catalog", "unknown_type"}, "", false},
		{[]string{"other_schema", "int4"}, "", false},
		{[]string{"a", "b", "c"}, "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalizeCast(tt.names)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalizeCast(%v) = (%q, %v), want (%q, %v)", tt.names, got, ok, tt.want, tt.wantOK)
		}
	}
}
