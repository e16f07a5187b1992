// Package controller owns the navigation state machine. A single goroutine
// consumes button events, mutates the cursor and view state, and pushes
// frames to the renderer; nothing else touches controller state.
package controller
