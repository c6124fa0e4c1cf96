package result

import (
	"fmt"

	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	"github.com/tidwall/gjson"
)

// Result is the generic outcome of one HTTP exchange.
type Result struct {
	Succeeded    bool
	StatusCode   int
	ReasonPhrase string
	JSONString   string
	ErrorMessage string
	// PathToResult is the gjson path of the action's payload inside the
	// response, e.g. "_source" for document reads.
	PathToResult string

	json  gjson.Result
	codec codec.Codec
}

// New parses body into a Result. A nil body produces a result without
// JSON. Success is decided by the status code alone.
func New(body []byte, statusCode int, reasonPhrase string, c codec.Codec, pathToResult string) (*Result, error) {
	if c == nil {
		c = codec.Default()
	}

	r := &Result{
		StatusCode:   statusCode,
		ReasonPhrase: reasonPhrase,
		PathToResult: pathToResult,
		codec:        c,
	}

	if len(body) > 0 {
		if !c.Valid(body) {
			return nil, &DeserializationError{
				StatusCode:   statusCode,
				ReasonPhrase: reasonPhrase,
				Err:          ErrInvalidJSON,
			}
		}
		r.JSONString = string(body)
		r.json = gjson.ParseBytes(body)
	}

	r.Succeeded = statusCode >= 200 && statusCode < 300
	if !r.Succeeded {
		r.ErrorMessage = errorMessage(r.json, statusCode, reasonPhrase)
	}
	return r, nil
}

// errorMessage extracts the engine's error description. Newer servers
// nest it under error.reason, older ones return a plain string.
func errorMessage(doc gjson.Result, statusCode int, reasonPhrase string) string {
	if reason := doc.Get("error.reason"); reason.Exists() {
		return reason.String()
	}
	if e := doc.Get("error"); e.Exists() {
		return e.String()
	}
	return fmt.Sprintf("%d %s", statusCode, reasonPhrase)
}

// JSON returns the parsed body.
func (r *Result) JSON() gjson.Result {
	return r.json
}

// HasBody reports whether the exchange returned a JSON document.
func (r *Result) HasBody() bool {
	return r.json.Exists()
}

// Value returns the value at a gjson path, e.g. "_source.user".
func (r *Result) Value(path string) gjson.Result {
	return r.json.Get(path)
}

// SourceAsString returns the raw JSON found at PathToResult, or the whole
// body when no path is set.
func (r *Result) SourceAsString() string {
	if r.PathToResult == "" {
		return r.JSONString
	}
	return r.json.Get(r.PathToResult).Raw
}

// SourceAs decodes the JSON found at PathToResult into target.
func (r *Result) SourceAs(target any) error {
	raw := r.SourceAsString()
	if raw == "" {
		return &DeserializationError{
			StatusCode:   r.StatusCode,
			ReasonPhrase: r.ReasonPhrase,
			Err:          fmt.Errorf("no value at %q", r.PathToResult),
		}
	}
	if err := r.codec.Unmarshal([]byte(raw), target); err != nil {
		return &DeserializationError{
			StatusCode:   r.StatusCode,
			ReasonPhrase: r.ReasonPhrase,
			Err:          err,
		}
	}
	return nil
}
