// Package service provides the task-management operations that sit between the
// HTTP handlers and the task store: lookup, listing, status transitions,
// partial updates and deletion.
package service
