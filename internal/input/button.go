package input

import (
	"fmt"
	"strings"
	"time"
)

// Button is a logical navigation button on the appliance face.
type Button string

const (
	ButtonUp     Button = "up"
	ButtonDown   Button = "down"
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonA      Button = "a"
	ButtonB      Button = "b"
	ButtonStart  Button = "start"
	ButtonSelect Button = "select"
)

// Buttons lists every logical button in display order.
func Buttons() []Button {
	return []Button{
		ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
		ButtonA, ButtonB, ButtonStart, ButtonSelect,
	}
}

// ParseButton maps a user-supplied name onto a logical button.
func ParseButton(name string) (Button, error) {
	candidate := Button(strings.ToLower(strings.TrimSpace(name)))
	for _, button := range Buttons() {
		if candidate == button {
			return button, nil
		}
	}
	return "", fmt.Errorf("unknown button %q", name)
}

// Linux input key codes emitted by the gpio-keys device tree overlay.
const (
	keyUp     = 103
	keyLeft   = 105
	keyRight  = 106
	keyDown   = 108
	btnA      = 304
	btnB      = 305
	btnSelect = 314
	btnStart  = 315
)

// buttonForCode maps an evdev key code to a logical button.
func buttonForCode(code uint16) (Button, bool) {
	switch code {
	case keyUp:
		return ButtonUp, true
	case keyDown:
		return ButtonDown, true
	case keyLeft:
		return ButtonLeft, true
	case keyRight:
		return ButtonRight, true
	case btnA:
		return ButtonA, true
	case btnB:
		return ButtonB, true
	case btnStart:
		return ButtonStart, true
	case btnSelect:
		return ButtonSelect, true
	default:
		return "", false
	}
}

// Event is one debounced button press.
type Event struct {
	Button Button
	When   time.Time
}
