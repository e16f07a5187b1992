// Package store persists dex records, favourites, and evolution chains in a
// local SQLite database. It is the cache the controller consults before any
// network fetch, and the system of record for the favourites set.
//
// The store assumes a single writer (the daemon); SQLite's WAL mode and busy
// timeout cover the occasional concurrent CLI reader.
package store
