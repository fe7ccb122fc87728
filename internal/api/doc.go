// Package api handles incoming HTTP requests: it decodes payloads, parses
// path and query parameters, calls the blog services and writes JSON
// responses. Every failure goes through HandleAPIError so clients always
// see the same error envelope.
package api
