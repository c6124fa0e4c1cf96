package client

import "errors"

var (
	// ErrNoServers is returned when a server list would be empty or holds a
	// blank entry.
	ErrNoServers = errors.New("at least one server is required")
	// ErrUnsupportedAsync is returned by ExecuteAsync. Only synchronous
	// execution is supported.
	ErrUnsupportedAsync = errors.New("asynchronous execution is not supported")
	// ErrSerializePayload wraps a failure to encode an action's payload.
	// Nothing is sent when it occurs.
	ErrSerializePayload = errors.New("serialize payload")
)
