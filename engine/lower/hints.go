package lower

import "strings"

// parserHints maps a substring of a libpg_query error message to a
// remediation hint (SPEC_FULL.md §7), SSOT-map style like the mapping
// package's lookup tables.
var parserHints = map[string]string{
	`syntax error at or near "from"`:  "Did you leave a trailing comma in the select target list?",
	`syntax error at or near "where"`: "Do you have an incomplete join in the FROM clause?",
}

func hintForParserMessage(msg string) string {
	for substr, hint := range parserHints {
		if strings.Contains(msg, substr) {
			return hint
		}
	}
	return ""
}
