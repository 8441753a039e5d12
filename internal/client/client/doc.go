// Package client contains client-side building blocks for DecoLog.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the license service: checkout session creation, entitlement lookup
//     and snapshot upload negotiation.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks JSON,
//     attaches the device license token as a bearer header where required,
//     and maps transport failures and error bodies to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     for the CLI, opening the SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable (service unreachable), ErrRejected (service
// answered with an error message), shared.ErrNotFound (unknown device or
// key), shared.ErrStorageUnavailable (local database failed to open).
//
// Concurrency & Contexts
//
// Implementations should be safe for concurrent use unless stated otherwise.
// All operations accept context.Context and must honor cancellation/timeouts.
package client
