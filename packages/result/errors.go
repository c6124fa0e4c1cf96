package result

import (
	"errors"
	"fmt"
)

// ErrInvalidJSON is matched by DeserializationErrors raised for bodies that
// are not valid JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// DeserializationError reports a response body that could not be turned into
// a result. StatusCode and ReasonPhrase describe the exchange.
type DeserializationError struct {
	StatusCode   int
	ReasonPhrase string
	Err          error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize response (%d %s): %v", e.StatusCode, e.ReasonPhrase, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
