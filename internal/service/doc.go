// Package service contains the task store: the single shared, mutex-guarded
// in-memory task collection and the operations allowed on it.
//
// The collection in memory is the source of truth. Every state-changing
// operation writes the full collection through a store.TaskPersister while
// still holding the lock, so the persisted document never lags a committed
// change and two mutations never interleave. If the write fails the in-memory
// change is rolled back and the error, wrapping store.ErrPersistenceUnavailable,
// is returned to the caller without retry.
package service
