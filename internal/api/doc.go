// Package api handles incoming HTTP requests, request decoding and response
// formatting. It adapts the resource services and the login service to
// JSON endpoints and maps internal errors to status codes without leaking
// internal detail.
package api
