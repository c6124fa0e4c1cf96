package http

import (
	"net/url"
	"sort"
	"strings"
)

// JoinURL appends uri to a server base URL with exactly one slash between
// them.
func JoinURL(server, uri string) string {
	server = strings.TrimRight(server, "/")
	if strings.HasPrefix(uri, "/") {
		return server + uri
	}
	return server + "/" + uri
}

// WithQuery appends params to uri as a query string with keys in sorted
// order. Keys with an empty value are sent without "=".
func WithQuery(uri string, params map[string]string) string {
	if len(params) == 0 {
		return uri
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		if v := params[k]; v != "" {
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}

	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + sb.String()
}
