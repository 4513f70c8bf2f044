// Package jsonfile provides the file-backed implementation of the
// store.TaskPersister interface. The whole task collection lives in a single
// pretty-printed JSON array which is rewritten in full on every save and
// checked against an embedded JSON Schema on load.
package jsonfile
