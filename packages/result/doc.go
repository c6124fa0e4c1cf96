// Package result defines the typed outcomes of executed actions.
//
// Every result carries the HTTP status code, reason phrase and the raw JSON
// body of the exchange that produced it. Parsed fields are read with gjson
// paths; typed decoding goes through the shared codec.
//
// Constructors either return a fully populated result or an error. A body
// that is present but is not JSON yields a *DeserializationError.
package result
