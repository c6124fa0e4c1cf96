package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"
)

// HasBody reports whether resp carries an entity reader. net/http may hand
// back an empty reader rather than http.NoBody for bodyless responses, so a
// true result does not promise any bytes.
func HasBody(resp *http.Response) bool {
	return resp != nil && resp.Body != nil && resp.Body != http.NoBody
}

// ReadBody reads and closes the response entity. It returns nil when the
// response has no entity and a non-nil (possibly empty) slice otherwise.
func ReadBody(resp *http.Response) ([]byte, error) {
	if !HasBody(resp) {
		return nil, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// ReasonPhrase extracts the reason phrase from the response status line,
// falling back to the canonical text for the status code.
func ReasonPhrase(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	prefix := strconv.Itoa(resp.StatusCode)
	if reason, ok := strings.CutPrefix(resp.Status, prefix); ok {
		if reason = strings.TrimSpace(reason); reason != "" {
			return reason
		}
	}
	return http.StatusText(resp.StatusCode)
}

func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
