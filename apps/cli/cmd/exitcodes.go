package cmd

// Exit codes for searchbox CLI
const (
	// ExitSuccess indicates the action succeeded
	ExitSuccess = 0

	// ExitActionFailure indicates the server answered but the action did not
	// succeed, e.g. a missing document
	ExitActionFailure = 1

	// ExitResponseError indicates a response that could not be deserialized
	ExitResponseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
