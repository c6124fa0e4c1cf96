package http

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMethod is matched by every *MethodError.
var ErrUnsupportedMethod = errors.New("unsupported method")

// MethodError reports a verb name the builder does not recognize.
type MethodError struct {
	Method string
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("unsupported method: %q", e.Method)
}

func (e *MethodError) Unwrap() error {
	return ErrUnsupportedMethod
}

// TransportError reports an I/O failure while executing a request or reading
// its response. The underlying error is reachable through errors.Is/As.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
