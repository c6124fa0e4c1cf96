package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// Bodies synthesized for HEAD responses that arrive without content.
const (
	HeadFoundBody    = `{"ok" : true, "found" : true}`
	HeadNotFoundBody = `{"ok" : false, "found" : false}`
)

// Normalize corrects transport quirks before deserialization. A HEAD
// response without a body gets a JSON body derived from its status: 200
// reports a found document, 404 a missing one. Any other status keeps the
// body absent. Responses to other methods are returned untouched. A body
// that fails to read is reported as an error and nothing is synthesized.
func Normalize(req *http.Request, resp *http.Response) (*http.Response, error) {
	if req == nil || resp == nil || !strings.EqualFold(req.Method, http.MethodHead) {
		return resp, nil
	}

	data, err := peekBody(resp)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		resp.Body = io.NopCloser(bytes.NewReader(data))
		return resp, nil
	}

	switch resp.StatusCode {
	case http.StatusOK:
		setBody(resp, HeadFoundBody)
	case http.StatusNotFound:
		setBody(resp, HeadNotFoundBody)
	default:
		resp.Body = http.NoBody
	}
	return resp, nil
}

// peekBody drains and closes a response body. An absent or empty body
// yields no data.
func peekBody(resp *http.Response) ([]byte, error) {
	if !HasBody(resp) {
		return nil, nil
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func setBody(resp *http.Response, body string) {
	resp.Body = io.NopCloser(strings.NewReader(body))
	resp.ContentLength = int64(len(body))
}
