// Package cache provides the local key/value store behind the cached data
// source mode.
//
// Values are opaque strings. Callers serialize their own structures before
// Set and parse them after Get. Each Store is scoped to a namespace, and
// ClearAll removes only that namespace.
//
// Backends:
//
//   - File:   a TOML document, one table per namespace
//   - SQLite: a kv table in a modernc.org/sqlite database
//   - Redis:  plain string keys "<namespace>:<key>" without expiry
//   - Memory: a map, for tests and throwaway sessions
//
// No backend makes a group of Set calls atomic.
package cache
