// Package store persists the application definition list to durable storage.
//
// The registry reads the store once at startup and writes it after every
// mutation. The persisted layout is a single JSON document holding the
// ordered list of definitions, kept at the per-user configuration location.
package store
