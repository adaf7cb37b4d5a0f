// Package sqlite provides a gorm-backed SQLite implementation of store.TaskStore
// for single-node deployments that do not run PostgreSQL.
package sqlite
