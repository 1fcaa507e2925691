// Package store declares the persistence contracts for users, task statuses,
// labels and tasks, the sentinel errors they return, and the transaction
// helper services use to group writes.
//
// The SQL implementations live in internal/platform/sqlstore.
package store
