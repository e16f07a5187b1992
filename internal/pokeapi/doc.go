// Package pokeapi implements a client for the public PokeAPI REST service.
//
// The client exposes the handful of endpoints the appliance needs: pokemon
// lookups by identifier or name, species flavor text, evolution chains, and
// the paged index used for bulk population. Transient transport failures and
// retryable status codes are retried with exponential backoff before an
// error surfaces.
package pokeapi
