package mapping

// pgCatalogCastSynonyms is the rewrite table SPEC_FULL.md §4.3 calls out by
// name: these four pg_catalog type names get their SQL-standard synonym
// instead of their internal one. Every other schema-qualified type name is
// unsupported — PostgREST casts are written as bare, unqualified type names
// in a query string, so there is nowhere to put a schema prefix.
var pgCatalogCastSynonyms = map[string]string{
	"int2":   "smallint",
	"int4":   "int",
	"int8":   "bigint",
	"float8": "float",
}

// CanonicalizeCast resolves a TypeName's Names list (as produced by
// pg_query_go, e.g. ["pg_catalog", "int4"] for "::int" or ["text"] for
// "::text") to the cast name this translator emits, or reports false when
// the cast is schema-qualified by anything other than the pg_catalog
// synonyms above.
func CanonicalizeCast(names []string) (string, bool) {
	switch len(names) {
	case 1:
		return names[0], true
	case 2:
		if names[0] != "pg_catalog" {
			return "", false
		}
		if synonym, ok := pgCatalogCastSynonyms[names[1]]; ok {
			return synonym, true
		}
		return "", false
	default:
		return "", false
	}
}
