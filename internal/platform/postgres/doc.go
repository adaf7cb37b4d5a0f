// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles query execution, mapping between domain tasks and table rows,
// translation of driver errors into store errors, and the goose-managed
// schema migrations embedded from the migrations directory.
package postgres
