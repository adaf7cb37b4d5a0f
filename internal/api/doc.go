// Package api handles incoming HTTP requests for the task endpoints: path and
// body parsing, request validation, and mapping service results and errors to
// HTTP responses. Handlers hold no state between requests.
package api
