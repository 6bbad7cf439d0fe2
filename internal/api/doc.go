// Package api provides the HTTP handlers for the task manager API.
//
// Handlers decode and validate requests, call into the service layer, and
// translate the returned domain objects and sentinel errors into JSON
// responses. All error responses go through the shared sanitization helpers
// so internal detail never reaches a client.
package api
