// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store. All implementations work through the
// store.DBTX abstraction so they run equally against a connection pool or a
// transaction, and they normalize driver errors through MapError.
package postgres
