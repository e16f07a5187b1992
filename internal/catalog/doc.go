// Package catalog coordinates the cache-first record pipeline: lookups hit
// the local store before the PokeAPI client, and every successful fetch is
// persisted so the appliance keeps working offline.
package catalog
