package lower

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
	"github.com/pgrest-dev/pgrest/mapping"
)

const embedHint = "Did you forget to join that relation or alias it to something else?"

// rawTarget is pass 1's output: a lowered column/aggregate Target plus the
// relation prefix it was written with, carried separately from
// model.Target because routing metadata has no place in the output model
// (SPEC_FULL.md §4.3 pass 2 strips it once the target finds its home).
type rawTarget struct {
	relation string
	target   model.Target
}

// LowerProjection runs all three passes of SPEC_FULL.md §4.3 over the SQL
// projection list, returning the top-level Target tree.
func LowerProjection(targetList []*pg_query.Node, env *Env) ([]model.Target, error) {
	raws := make([]rawTarget, 0, len(targetList))
	for _, node := range targetList {
		rt := node.GetResTarget()
		if rt == nil {
			return nil, errors.Unsupportedf("unsupported projection item")
		}
		raw, err := lowerTargetItem(rt)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}

	joined := make([]*model.Target, len(env.Joined))
	for i := range env.Joined {
		t := env.Joined[i]
		joined[i] = &t
	}

	var topLevel []model.Target
	primaryRef := env.Primary.Reference()

	for _, raw := range raws {
		if raw.relation == "" || raw.relation == primaryRef {
			topLevel = append(topLevel, raw.target)
			continue
		}
		parent := findByReference(joined, raw.relation)
		if parent == nil {
			return nil, errors.UnsupportedHintf(embedHint, "column is prefixed with unknown relation %q", raw.relation)
		}
		parent.Targets = append(parent.Targets, raw.target)
	}

	for _, jp := range joined {
		if jp.JoinedColumns.Left.Relation == primaryRef {
			topLevel = append(topLevel, *jp)
			continue
		}
		parent := findByReference(joined, jp.JoinedColumns.Left.Relation)
		if parent == nil {
			return nil, errors.Unsupportedf("internal error: no parent found for joined relation %q", jp.Relation)
		}
		parent.Targets = append(parent.Targets, *jp)
	}

	return topLevel, nil
}

func findByReference(joined []*model.Target, ref string) *model.Target {
	for _, t := range joined {
		if targetReference(t) == ref {
			return t
		}
	}
	return nil
}

func lowerTargetItem(rt *pg_query.ResTarget) (rawTarget, error) {
	alias := rt.Name
	val := rt.Val

	var outputCast string
	if tc := val.GetTypeCast(); tc != nil {
		cast, ok := mapping.CanonicalizeCast(typeNameParts(tc.TypeName))
		if !ok {
			return rawTarget{}, errors.Unsupportedf("unsupported cast type")
		}
		outputCast = cast
		val = tc.Arg
	}

	if fc := val.GetFuncCall(); fc != nil {
		return lowerAggregateTarget(fc, alias, outputCast)
	}

	relation, column, err := columnExpr(val)
	if err != nil {
		return rawTarget{}, err
	}
	return rawTarget{relation: relation, target: model.Target{
		Kind:   model.TargetColumn,
		Column: column,
		Alias:  alias,
		Cast:   outputCast,
	}}, nil
}

func lowerAggregateTarget(fc *pg_query.FuncCall, alias, outputCast string) (rawTarget, error) {
	fn, ok := parseAggregateFunction(fc.Funcname)
	if !ok {
		return rawTarget{}, errors.Unsupportedf("expressions are not supported as targets")
	}

	var relation, column, inputCast string
	switch {
	case fc.AggStar:
		// count(*): bare count, same as count() below.
	case len(fc.Args) == 0:
		// count(): bare count.
	case len(fc.Args) == 1:
		arg := fc.Args[0]
		if tc := arg.GetTypeCast(); tc != nil {
			cast, ok := mapping.CanonicalizeCast(typeNameParts(tc.TypeName))
			if !ok {
				return rawTarget{}, errors.Unsupportedf("unsupported cast type")
			}
			inputCast = cast
			arg = tc.Arg
		}
		var err error
		relation, column, err = columnExpr(arg)
		if err != nil {
			return rawTarget{}, err
		}
	default:
		return rawTarget{}, errors.Unsupportedf("aggregate %s takes at most one argument", fn)
	}

	if column == "" && fn != model.Count {
		return rawTarget{}, errors.Unsupportedf("aggregate %s requires a column", fn)
	}

	return rawTarget{relation: relation, target: model.Target{
		Kind:       model.TargetAggregate,
		Function:   fn,
		Column:     column,
		Alias:      alias,
		InputCast:  inputCast,
		OutputCast: outputCast,
	}}, nil
}

func parseAggregateFunction(funcname []*pg_query.Node) (model.AggregateFunction, bool) {
	if len(funcname) == 0 {
		return "", false
	}
	s := funcname[len(funcname)-1].GetString_()
	if s == nil {
		return "", false
	}
	switch strings.ToLower(s.Sval) {
	case "avg":
		return model.Avg, true
	case "count":
		return model.Count, true
	case "sum":
		return model.Sum, true
	case "min":
		return model.Min, true
	case "max":
		return model.Max, true
	default:
		return "", false
	}
}
