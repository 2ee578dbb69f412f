package render

import (
	"fmt"
	"strings"
)

// Curl formats an HTTPRequest as a curl command line: "curl [-G] <base><path>"
// followed by one "-d 'k=v'" flag per parameter. -G makes curl treat the -d
// flags as GET query parameters rather than a POST body, matching how this
// translator's output is always read-only. -G is included iff there are
// parameters; a bare "select * from books" has none to attach.
func Curl(req *HTTPRequest, base string) string {
	var b strings.Builder
	b.WriteString("curl ")
	if len(req.Params) > 0 {
		b.WriteString("-G ")
	}
	b.WriteString(quoteShell(base + req.Path))
	for _, p := range req.Params {
		b.WriteString(" -d ")
		b.WriteString(quoteShell(p.Key + "=" + p.Value))
	}
	return b.String()
}

func quoteShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// RawHTTP formats an HTTPRequest as a literal HTTP/1.1 request line plus a
// Host header, for pasting into a raw socket or an HTTP-file tool.
func RawHTTP(req *HTTPRequest, host string) string {
	return fmt.Sprintf("%s %s HTTP/1.1\r\nHost: %s\r\n", req.Method, req.FullPath, host)
}
