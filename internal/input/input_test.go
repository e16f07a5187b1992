package input

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Button
		wantErr bool
	}{
		{name: "plain", input: "up", want: ButtonUp},
		{name: "mixed case", input: "Start", want: ButtonStart},
		{name: "padded", input: "  a  ", want: ButtonA},
		{name: "unknown", input: "turbo", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseButton(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestButtonForCodeCoversAllButtons(t *testing.T) {
	codes := []uint16{keyUp, keyDown, keyLeft, keyRight, btnA, btnB, btnStart, btnSelect}
	seen := make(map[Button]bool)
	for _, code := range codes {
		button, ok := buttonForCode(code)
		if !ok {
			t.Fatalf("code %d not mapped", code)
		}
		seen[button] = true
	}
	for _, button := range Buttons() {
		if !seen[button] {
			t.Fatalf("button %q has no key code", button)
		}
	}

	if _, ok := buttonForCode(0); ok {
		t.Fatal("expected unmapped code to be rejected")
	}
}

func TestDebouncerSuppressesBounces(t *testing.T) {
	d := NewDebouncer(200 * time.Millisecond)
	base := time.Now()

	if !d.Allow(ButtonA, base) {
		t.Fatal("first press should pass")
	}
	if d.Allow(ButtonA, base.Add(50*time.Millisecond)) {
		t.Fatal("bounce inside window should be suppressed")
	}
	if !d.Allow(ButtonB, base.Add(50*time.Millisecond)) {
		t.Fatal("other buttons debounce independently")
	}
	if !d.Allow(ButtonA, base.Add(250*time.Millisecond)) {
		t.Fatal("press after window should pass")
	}
}

func TestDebouncerZeroWindowPassesEverything(t *testing.T) {
	d := NewDebouncer(0)
	at := time.Now()
	for i := 0; i < 3; i++ {
		if !d.Allow(ButtonUp, at) {
			t.Fatal("zero window must not suppress")
		}
	}
}

func TestDecodeRawEvent(t *testing.T) {
	buf := new(bytes.Buffer)
	want := rawEvent{Sec: 1700000000, Usec: 250000, Type: evKey, Code: keyDown, Value: keyPress}
	if err := binary.Write(buf, binary.LittleEndian, want); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if buf.Len() != rawEventSize {
		t.Fatalf("fixture size %d, want %d", buf.Len(), rawEventSize)
	}

	got, err := decodeRawEvent(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}

	ts := got.timestamp()
	if ts.Unix() != want.Sec {
		t.Fatalf("timestamp seconds mismatch: %v", ts)
	}
}
