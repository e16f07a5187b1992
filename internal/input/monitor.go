package input

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"pokedexd/internal/config"
	"pokedexd/internal/logging"
)

// Source delivers debounced button events.
type Source interface {
	Events() <-chan Event
	Start(ctx context.Context) error
	Stop()
}

// Monitor reads button presses from the gpio-keys evdev device. When the
// device is absent at startup it listens for udev add events and attaches
// as soon as the device appears.
type Monitor struct {
	cfg    *config.Config
	logger *slog.Logger

	events   chan Event
	debounce *Debouncer

	mu      sync.Mutex
	conn    *netlink.UEventConn
	device  io.ReadCloser
	quit    chan struct{}
	running bool
}

// NewMonitor creates a button monitor from configuration.
func NewMonitor(cfg *config.Config, logger *slog.Logger) *Monitor {
	if cfg == nil {
		return nil
	}
	return &Monitor{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "input-monitor"),
		events:   make(chan Event, 16),
		debounce: NewDebouncer(time.Duration(cfg.Input.DebounceMS) * time.Millisecond),
	}
}

// Events returns the debounced press stream.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Start attaches to the button device, or arms hotplug discovery when the
// device is not present yet. A missing device is not fatal; presses can
// still be injected through the IPC surface.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	m.quit = make(chan struct{})
	m.running = true
	quit := m.quit

	path := strings.TrimSpace(m.cfg.Input.DevicePath)
	if path == "" {
		found, err := findEventDevice(m.cfg.Input.DeviceName)
		if err != nil {
			m.logger.Warn("button device not present; waiting for hotplug",
				logging.String("device_name", m.cfg.Input.DeviceName),
				logging.Error(err))
			m.armHotplugLocked(ctx, quit)
			return nil
		}
		path = found
	}

	if err := m.attachLocked(ctx, path, quit); err != nil {
		m.logger.Warn("button device attach failed; presses limited to remote injection",
			logging.String("device_path", path),
			logging.Error(err))
		m.armHotplugLocked(ctx, quit)
	}
	return nil
}

// Stop detaches from the device and shuts down discovery.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.device != nil {
		_ = m.device.Close()
		m.device = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
	m.logger.Info("input monitor stopped")
}

// Running reports whether the monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Inject delivers a synthetic press through the same debounce path as
// hardware events. Used by the IPC press operation.
func (m *Monitor) Inject(button Button) bool {
	return m.deliver(Event{Button: button, When: time.Now()})
}

func (m *Monitor) deliver(event Event) bool {
	if !m.debounce.Allow(event.Button, event.When) {
		return false
	}
	select {
	case m.events <- event:
		return true
	default:
		// Drop rather than block; the controller drains quickly and a
		// full buffer means the user is mashing buttons.
		m.logger.Warn("event buffer full, dropping press",
			logging.String(logging.FieldButton, string(event.Button)))
		return false
	}
}

func (m *Monitor) attachLocked(ctx context.Context, path string, quit <-chan struct{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	name, err := evdevDeviceName(file.Fd())
	if err != nil {
		name = m.cfg.Input.DeviceName
	}

	m.device = file
	go m.readLoop(ctx, file, quit)

	m.logger.Info("button device attached",
		logging.String("device_path", path),
		logging.String("device_name", name))
	return nil
}

// readLoop decodes raw input events and forwards press edges.
func (m *Monitor) readLoop(ctx context.Context, device io.Reader, quit <-chan struct{}) {
	buf := make([]byte, rawEventSize)
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		default:
		}

		if _, err := io.ReadFull(device, buf); err != nil {
			select {
			case <-quit:
			case <-ctx.Done():
			default:
				m.logger.Warn("button device read failed", logging.Error(err))
			}
			return
		}

		raw, err := decodeRawEvent(buf)
		if err != nil {
			m.logger.Warn("malformed input event", logging.Error(err))
			continue
		}
		if raw.Type != evKey || raw.Value != keyPress {
			continue
		}
		button, ok := buttonForCode(raw.Code)
		if !ok {
			continue
		}
		if m.deliver(Event{Button: button, When: raw.timestamp()}) {
			m.logger.Debug("button pressed", logging.String(logging.FieldButton, string(button)))
		}
	}
}

// armHotplugLocked listens for udev input add events until the configured
// device appears.
func (m *Monitor) armHotplugLocked(ctx context.Context, quit <-chan struct{}) {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; hotplug discovery unavailable",
			logging.Error(err))
		return
	}
	m.conn = conn
	go m.hotplugLoop(ctx, conn, quit)
}

func (m *Monitor) hotplugLoop(ctx context.Context, conn *netlink.UEventConn, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			if m.handleHotplug(ctx, uevent, quit) {
				close(monitorQuit)
				_ = conn.Close()
				return
			}
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// buildMatcher selects udev add events for input event devices.
func (m *Monitor) buildMatcher() netlink.Matcher {
	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "input",
		},
	})
	return rules
}

func (m *Monitor) handleHotplug(ctx context.Context, uevent netlink.UEvent, quit <-chan struct{}) bool {
	devname := uevent.Env["DEVNAME"]
	if devname == "" || !strings.Contains(devname, "event") {
		return false
	}
	if !strings.HasPrefix(devname, "/dev/") {
		devname = "/dev/" + devname
	}

	file, err := os.Open(devname)
	if err != nil {
		return false
	}
	name, err := evdevDeviceName(file.Fd())
	if err != nil || name != m.cfg.Input.DeviceName {
		_ = file.Close()
		return false
	}
	_ = file.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return true
	}
	if err := m.attachLocked(ctx, devname, quit); err != nil {
		m.logger.Warn("hotplug attach failed", logging.Error(err))
		return false
	}
	m.conn = nil
	return true
}
