// Package lower converts a parsed PostgreSQL syntax tree (pg_query_go/v5)
// into the request model (engine/model), one file per clause, generalized
// from the teacher's engine/reverse/postgres.go — the only teacher file that
// actually walks a pg_query_go tree (Node.Get<Variant>() switches over
// SelectStmt/RangeVar/JoinExpr/ResTarget/ColumnRef/A_Expr/A_Const/BoolExpr/
// NullTest/FuncCall/TypeCast/SortBy).
package lower

import "github.com/pgrest-dev/pgrest/engine/model"

// Relation names a FROM/JOIN source by its table name and optional alias.
type Relation struct {
	Name  string
	Alias string
}

// Reference is the name other clauses use to address this relation: the
// alias when one was given, the bare table name otherwise (spec.md §3's
// `reference = alias ?? name`).
func (r Relation) Reference() string {
	if r.Alias != "" {
		return r.Alias
	}
	return r.Name
}

// Env is the relations environment built while lowering FROM/JOIN (§4.2)
// and read by every other clause lowerer. It is assembled once and never
// mutated after FROM lowering completes.
type Env struct {
	Primary Relation
	// Joined holds one TargetEmbedded model.Target per join, in FROM-clause
	// order, with Targets left nil — projection lowering (§4.3) fills
	// Targets and performs the final tree nesting; this slice never nests
	// embedded targets into each other.
	Joined []model.Target
}

// targetReference is an embedded target's resolution key: its alias when
// given, its relation name otherwise, whatever its Flatten setting. An
// aliased embedded target is therefore addressed only by its alias, never by
// its bare relation name.
func targetReference(t *model.Target) string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Relation
}

// HasReference reports whether name resolves to the primary relation or to
// some already-joined relation in env.
func (e *Env) HasReference(name string) bool {
	if name == e.Primary.Reference() {
		return true
	}
	return e.findJoined(name) != nil
}

func (e *Env) findJoined(name string) *model.Target {
	for i := range e.Joined {
		if targetReference(&e.Joined[i]) == name {
			return &e.Joined[i]
		}
	}
	return nil
}
