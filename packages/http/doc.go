// Package http builds and post-processes the HTTP exchanges issued by the
// searchbox client.
//
// It wraps the standard library's http package with:
//   - Request construction from a verb name, URL and optional JSON payload
//   - Body-enclosing GET and DELETE requests
//   - Optional gzip compression of request entities
//   - Normalization of bodyless HEAD responses
//   - A pooled transport with configurable timeouts
package http
