// Package input turns GPIO button presses into navigation events. Buttons
// are exposed by the kernel gpio-keys driver as a Linux evdev device; the
// package discovers that device via udev, reads raw input events from it,
// and debounces presses before handing them to the controller.
package input
