// Package common contains shared constants and sentinel errors used across
// the alumnet client components.
package common

// AuthTokenHeaderName carries the session token on outbound requests.
const AuthTokenHeaderName = "x-auth-token"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// ContentTypeJSON is used for every request and response body.
const ContentTypeJSON = "application/json"
