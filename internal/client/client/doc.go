// Package client talks to the shopping-list REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): auth,
//     users, profile and group operations.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the bearer token read from a TokenSource, tags every request with an
//     X-Request-ID, records Prometheus metrics, validates response shapes and
//     maps HTTP failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations for the metadata store.
//
// # Error Handling
//
// Callers match with errors.Is / errors.As:
//   - ErrUnavailable: the request never got an HTTP response.
//   - ErrRequestFailed: non-2xx response; the concrete error is *StatusError.
//   - ErrUnauthorized: 401 or 403 (also matches ErrRequestFailed).
//   - ErrNotFound: 404 (also matches ErrRequestFailed).
//   - ErrMalformedResponse: a 2xx body that does not fit the expected shape.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call takes a context.Context;
// when it carries no deadline the client's default timeout applies. Nothing
// is retried.
package client
