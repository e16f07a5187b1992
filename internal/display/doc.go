// Package display renders controller frames as text. The appliance screen
// is a small terminal; frames are drawn with go-pretty tables so the same
// renderer serves the device console and an attached debug terminal.
package display
