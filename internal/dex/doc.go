// Package dex defines the Pokedex domain model shared by the store, the
// remote API client, and the controller. Records are immutable once
// assembled; the API boundary validates type labels and stat shapes before
// a Record is constructed.
package dex
