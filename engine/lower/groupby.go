package lower

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// groupKey identifies a projection column by the embedded-target reference
// it lives under ("" for the primary relation / top level) and its bare
// column name, mirroring how LowerProjection strips relation prefixes once
// a column finds its home (SPEC_FULL.md §4.3 pass 2).
type groupKey struct {
	scope  string
	column string
}

// ValidateGroupBy checks the already-lowered projection list against the
// GROUP BY list per SPEC_FULL.md §4.5 / §3 invariants 3 and 4. It never
// modifies targets — PostgREST has no GROUP BY query parameter of its own;
// this is purely a cross-clause validation pass.
func ValidateGroupBy(groupClause []*pg_query.Node, env *Env, targets []model.Target) error {
	if len(groupClause) == 0 {
		return nil
	}

	if !model.SomeTarget(targets, func(t model.Target) bool { return t.Kind == model.TargetAggregate }) {
		return errors.Unsupportedf("GROUP BY requires at least one aggregate projection")
	}

	primaryRef := env.Primary.Reference()
	groupSet := make(map[groupKey]bool, len(groupClause))
	for _, g := range groupClause {
		relation, column, err := columnExpr(g)
		if err != nil {
			return err
		}
		scope := ""
		if relation != "" && relation != primaryRef {
			if !env.HasReference(relation) {
				return errors.Unsupportedf("GROUP BY references unknown relation %q", relation)
			}
			scope = relation
		}
		groupSet[groupKey{scope, column}] = true
	}

	for key := range groupSet {
		if !projectionContains(targets, key.scope, key.column) {
			return errors.Unsupportedf("Every group by column must also exist as a select target.")
		}
	}

	if !everyNonAggregateGrouped(targets, "", groupSet) {
		return errors.Unsupportedf("every non-aggregate projection must also appear in the GROUP BY clause")
	}
	return nil
}

func projectionContains(targets []model.Target, scope, column string) bool {
	if scope == "" {
		for _, t := range targets {
			if t.Kind == model.TargetColumn && t.Column == column {
				return true
			}
		}
		return false
	}
	for _, t := range targets {
		if t.Kind != model.TargetEmbedded || targetReference(&t) != scope {
			continue
		}
		for _, child := range t.Targets {
			if child.Kind == model.TargetColumn && child.Column == column {
				return true
			}
		}
	}
	return false
}

func everyNonAggregateGrouped(targets []model.Target, scope string, groupSet map[groupKey]bool) bool {
	for _, t := range targets {
		switch t.Kind {
		case model.TargetColumn:
			if !groupSet[groupKey{scope, t.Column}] {
				return false
			}
		case model.TargetEmbedded:
			if !everyNonAggregateGrouped(t.Targets, targetReference(&t), groupSet) {
				return false
			}
		}
	}
	return true
}
