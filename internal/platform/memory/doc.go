// Package memory provides a process-local implementation of store.TaskStore.
// It is used for local runs without a database and for end-to-end tests.
package memory
