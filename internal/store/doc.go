// Package store defines the persistence contracts the domain layer depends
// on, one interface per aggregate, plus the sentinel errors implementations
// use to signal absence and duplication. Implementations live in
// internal/platform/postgres.
package store
