// Package client contains the Transport Adapter of the alumnet client core.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with one
//     method per backend operation: profiles, users, alumni, colleges,
//     profile update, user authentication, email/SMS, notifications and
//     the send/accept request endpoint.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the session token and a request id, applies a per-request timeout and
//     guards the backend with a circuit breaker.
//
// # Error Handling
//
// Every failure is one of three typed errors, matchable with errors.As:
// TransportError (network, timeout, open breaker), ResponseError (non-2xx,
// carries the server message) and DecodeError (malformed payload, including
// a notification snapshot that puts one pair in two lists). Sentinels
// ErrUnavailable and ErrUnauthorized can be matched with errors.Is.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
