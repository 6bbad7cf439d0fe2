// Package store defines the persistence interfaces for the task manager's
// entities, the sentinel errors their implementations return, and the shared
// pagination and filter types used by list queries. Implementations live in
// internal/platform/postgres.
package store
