// Package store defines interfaces for task persistence and the error
// taxonomy shared by the task store and its persistence adapters.
package store
