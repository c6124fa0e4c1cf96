// Package action describes the API calls the client can execute.
//
// An Action carries everything needed for one exchange: the URI relative to
// a server, the HTTP verb, an optional payload, extra headers, and a factory
// that turns the raw response into the action's typed result. The client
// never interprets responses itself; each action decides what success means.
//
// Example Usage:
//
//	get := action.NewGet("twitter", "tweet", "1")
//	doc, err := client.Execute(ctx, c, get)
//	if err == nil && doc.Found {
//		_ = doc.SourceAs(&tweet)
//	}
package action
