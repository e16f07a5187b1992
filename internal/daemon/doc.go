// Package daemon wires the appliance together: store, catalog, controller,
// button monitor, and notifications, behind a single-instance file lock.
// The IPC server drives it remotely; cmd/pokedexd runs it.
package daemon
