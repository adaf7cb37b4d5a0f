// Package domain contains the Task entity, its status enumeration and the
// partial-update value object. It has no knowledge of storage or transport.
package domain
