package input

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// evKey is the evdev event type for key and button state changes.
	evKey = 0x01
	// keyPress is the evdev value for the press edge; releases and
	// autorepeats are ignored.
	keyPress = 1

	// rawEventSize is sizeof(struct input_event) on 64-bit kernels.
	rawEventSize = 24
)

// rawEvent mirrors struct input_event from linux/input.h.
type rawEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func decodeRawEvent(buf []byte) (rawEvent, error) {
	var ev rawEvent
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ev); err != nil {
		return rawEvent{}, fmt.Errorf("decode input event: %w", err)
	}
	return ev, nil
}

func (e rawEvent) timestamp() time.Time {
	return time.Unix(e.Sec, e.Usec*int64(time.Microsecond))
}

// eviocgname builds the EVIOCGNAME ioctl request for the given buffer size.
func eviocgname(size int) uintptr {
	const (
		iocRead  = 2
		iocBase  = 'E'
		iocNr    = 0x06
		nrShift  = 0
		typShift = 8
		sizShift = 16
		dirShift = 30
	)
	return uintptr(iocRead<<dirShift | size<<sizShift | iocBase<<typShift | iocNr<<nrShift)
}

// evdevDeviceName reads the human-readable name of an event device.
func evdevDeviceName(fd uintptr) (string, error) {
	var buf [256]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, eviocgname(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "", fmt.Errorf("EVIOCGNAME: %w", errno)
	}
	if idx := bytes.IndexByte(buf[:], 0); idx >= 0 {
		return string(buf[:idx]), nil
	}
	return string(buf[:]), nil
}

// findEventDevice scans /dev/input/event* for a device with the given name.
func findEventDevice(name string) (string, error) {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return "", fmt.Errorf("scan input devices: %w", err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		deviceName, nameErr := evdevDeviceName(file.Fd())
		_ = file.Close()
		if nameErr != nil {
			continue
		}
		if deviceName == name {
			return path, nil
		}
	}
	return "", fmt.Errorf("no input device named %q", name)
}
