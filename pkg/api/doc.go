// Package api exposes the word-cloud pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz              liveness and build version
//	POST /v1/layout            compute a layout, returns the layout document
//	POST /v1/render/{format}   compute (or take) a layout and render it
//
// Request bodies are JSON-encoded [pipeline.Options]. Words are given inline
// as "words" ([{"name":..., "value":...}]) or as raw "text" to be counted.
// Server-side paths (input files, font files) cannot be set over HTTP.
//
// A render request may carry a previously returned layout document under
// "layout", in which case no layout is computed.
//
// Every response carries an X-Request-ID header. Errors are returned as
//
//	{"error": {"code": "INVALID_INPUT", "message": "...", "request_id": "..."}}
//
// with the HTTP status derived from the error code.
package api
