// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they work both on a plain
// connection and inside a transaction, and they translate driver errors into
// the store package's sentinel errors.
package postgres
