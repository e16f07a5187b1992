// Package notifications delivers appliance events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled, so callers never guard their calls.
//
// Extend this package if you need alternative transports; all daemon code
// depends only on the simple Service interface.
package notifications
