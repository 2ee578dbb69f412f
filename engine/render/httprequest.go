package render

import (
	"strconv"
	"strings"

	"github.com/pgrest-dev/pgrest/engine/errors"
	"github.com/pgrest-dev/pgrest/engine/model"
)

// Param is one rendered query-string key/value pair, pre-encoding.
type Param struct {
	Key   string
	Value string
}

// Options controls renderer behavior that varies by destination.
type Options struct {
	// URLSafe, when true, rewrites SQL's LIKE/ILIKE '%' wildcard to '*' so
	// the rendered value never needs percent-encoding in a URL (SPEC_FULL.md
	// §6). Client-code output wants this off, since '%' is a normal string
	// byte once it is no longer part of a URL.
	URLSafe bool
}

// HTTPRequest is a rendered PostgREST request description: an HTTP method,
// a resource path, and the ordered query parameters that produce it.
type HTTPRequest struct {
	Method   string
	Path     string
	Params   []Param
	FullPath string
}

// RenderHTTP renders a lowered Statement into a PostgREST HTTP request
// description (SPEC_FULL.md §6): select, then filters, then order, then
// limit/offset, in that parameter order, matching every worked example in
// SPEC_FULL.md §8.
func RenderHTTP(stmt *model.Statement, opts Options) (*HTTPRequest, error) {
	if stmt.Select == nil {
		return nil, errors.Renderf("http", "only SELECT statements can be rendered")
	}
	sel := stmt.Select

	var params []Param
	if !IsBareStar(sel.Targets) {
		params = append(params, Param{Key: "select", Value: TargetList(sel.Targets)})
	}

	filterParams, err := BuildParams(sel.Filter, opts.URLSafe)
	if err != nil {
		return nil, err
	}
	params = append(params, filterParams...)

	if len(sel.Sorts) > 0 {
		params = append(params, Param{Key: "order", Value: RenderOrder(sel.Sorts)})
	}

	if sel.Limit != nil {
		if sel.Limit.Count != nil {
			params = append(params, Param{Key: "limit", Value: strconv.Itoa(*sel.Limit.Count)})
		}
		if sel.Limit.Offset != nil {
			params = append(params, Param{Key: "offset", Value: strconv.Itoa(*sel.Limit.Offset)})
		}
	}

	path := "/" + sel.From
	return &HTTPRequest{
		Method:   "GET",
		Path:     path,
		Params:   params,
		FullPath: path + renderQueryString(params),
	}, nil
}

func renderQueryString(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = EncodeQueryValue(p.Key) + "=" + EncodeQueryValue(p.Value)
	}
	return "?" + strings.Join(parts, "&")
}

// RenderOrder renders a Sort slice into a single "order" parameter value:
// sort items concatenate with commas, and each item's direction/nulls
// qualifiers concatenate as ".<dir>.nulls<pos>" (SPEC_FULL.md §6).
func RenderOrder(sorts []model.Sort) string {
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		p := renderSortColumn(s.Relation, s.Column)
		if s.Direction != "" {
			p += "." + string(s.Direction)
		}
		if s.Nulls != "" {
			p += ".nulls" + string(s.Nulls)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ",")
}

// renderSortColumn renders a qualified name for ORDER BY. A relation-
// qualified column (an embedded resource's own column) uses the parenthesis
// syntax relation(column) rather than the dot syntax used everywhere else
// (SPEC_FULL.md §4.6); an unqualified column renders as-is.
func renderSortColumn(relation, column string) string {
	if relation == "" {
		return column
	}
	return relation + "(" + column + ")"
}
