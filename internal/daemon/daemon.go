package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"pokedexd/internal/catalog"
	"pokedexd/internal/config"
	"pokedexd/internal/controller"
	"pokedexd/internal/dex"
	"pokedexd/internal/display"
	"pokedexd/internal/input"
	"pokedexd/internal/logging"
	"pokedexd/internal/notifications"
	"pokedexd/internal/pokeapi"
	"pokedexd/internal/store"
)

// Daemon coordinates the appliance services and enforces single-instance
// execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.Store
	catalog    *catalog.Catalog
	controller *controller.Controller
	monitor    *input.Monitor
	notifier   notifications.Service

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	started time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	populateMu     sync.Mutex
	populateCancel context.CancelFunc
	lastPopulate   *catalog.PopulateResult
}

// Status represents daemon runtime information.
type Status struct {
	Running         bool
	PID             int
	DBPath          string
	LockFilePath    string
	Uptime          time.Duration
	Controller      controller.Snapshot
	RecordCount     int
	FavouriteCount  int
	PopulateRunning bool
	InputAttached   bool
}

// New constructs a daemon with initialized dependencies. The store stays
// open until Close.
func New(cfg *config.Config, st *store.Store, renderer display.Renderer, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if renderer == nil {
		renderer = display.NewTerminal(os.Stdout, cfg.Display.Width, cfg.Display.Color)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := pokeapi.New(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Language,
		pokeapi.WithRetries(cfg.PokeAPI.MaxRetries, time.Duration(cfg.Populate.RetryDelaySec)*time.Second),
		pokeapi.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.PokeAPI.TimeoutSeconds) * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	cat, err := catalog.New(cfg, st, client, logger)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.New(cfg, cat, st, renderer, logger)
	if err != nil {
		return nil, err
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "pokedexd.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		store:      st,
		catalog:    cat,
		controller: ctrl,
		monitor:    input.NewMonitor(cfg, logger),
		notifier:   notifications.NewService(cfg),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, attaches the button monitor, and launches
// the controller loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another pokedex daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.monitor.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start input monitor: %w", err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.controller.Run(d.ctx, d.monitor.Events())
	}()

	d.running.Store(true)
	d.started = time.Now()
	d.logger.Info("pokedex daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts background work and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.cancelPopulate()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.monitor.Stop()
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("pokedex daemon stopped")
}

// Close stops the daemon and releases held resources except the store,
// which the caller owns.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Running reports whether the daemon loop is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Status collects runtime information for the status IPC surface.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:         d.running.Load(),
		PID:             os.Getpid(),
		DBPath:          d.store.Path(),
		LockFilePath:    d.lockPath,
		Controller:      d.controller.Snapshot(),
		PopulateRunning: d.populateRunning(),
		InputAttached:   d.monitor.Running(),
	}
	if status.Running {
		status.Uptime = time.Since(d.started)
	}
	if count, err := d.store.CountRecords(ctx); err == nil {
		status.RecordCount = count
	}
	if favs, err := d.store.Favourites(ctx); err == nil {
		status.FavouriteCount = len(favs)
	}
	return status
}

// Show resolves a record by numeric identifier or name, cache-first.
func (d *Daemon) Show(ctx context.Context, ref string) (*dex.Record, bool, []dex.Evolution, error) {
	ref = strings.TrimSpace(ref)
	var (
		rec *dex.Record
		err error
	)
	if id, parseErr := strconv.ParseInt(ref, 10, 64); parseErr == nil {
		rec, err = d.catalog.Record(ctx, id)
	} else {
		rec, err = d.catalog.RecordByName(ctx, ref)
	}
	if err != nil {
		return nil, false, nil, err
	}

	fav, _ := d.store.IsFavourite(ctx, rec.ID)
	chain, _ := d.catalog.Evolutions(ctx, rec.ID)
	return rec, fav, chain, nil
}

// List returns cached records matching the filter.
func (d *Daemon) List(ctx context.Context, filter store.ListFilter) ([]*dex.Record, error) {
	return d.store.ListRecords(ctx, filter)
}

// ToggleFavourite flips favourite membership for a cached record.
func (d *Daemon) ToggleFavourite(ctx context.Context, id int64) (bool, error) {
	return d.store.ToggleFavourite(ctx, id)
}

// Favourites returns the favourite records in identifier order.
func (d *Daemon) Favourites(ctx context.Context) ([]*dex.Record, error) {
	return d.store.ListRecords(ctx, store.ListFilter{FavouritesOnly: true})
}

// Press injects a logical button press through the debounce path.
func (d *Daemon) Press(ctx context.Context, name string) (bool, error) {
	button, err := input.ParseButton(name)
	if err != nil {
		return false, err
	}
	if !d.running.Load() {
		return false, errors.New("daemon is not running")
	}
	return d.monitor.Inject(button), nil
}

// PopulateStart launches a background populate job. Only one job runs at a
// time; a second request reports the conflict instead of queueing.
func (d *Daemon) PopulateStart(ctx context.Context) (string, error) {
	if !d.running.Load() {
		return "", errors.New("daemon is not running")
	}

	d.populateMu.Lock()
	defer d.populateMu.Unlock()
	if d.populateCancel != nil {
		return "", errors.New("a populate job is already running")
	}

	jobCtx, cancel := context.WithCancel(d.ctx)
	d.populateCancel = cancel

	jobID := make(chan string, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			d.populateMu.Lock()
			d.populateCancel = nil
			d.populateMu.Unlock()
		}()

		first := true
		result, err := d.catalog.Populate(jobCtx, func(p catalog.PopulateProgress) {
			if first {
				first = false
				jobID <- p.JobID
				_ = d.notifier.NotifyPopulateStarted(jobCtx, p.JobID)
			}
		})
		if first {
			// No progress callback fired; surface an empty id so the
			// caller is not left waiting.
			jobID <- ""
		}
		if err != nil {
			d.logger.Error("populate failed", logging.Error(err))
			_ = d.notifier.NotifyError(context.WithoutCancel(jobCtx), err, "populate")
			return
		}

		d.populateMu.Lock()
		d.lastPopulate = result
		d.populateMu.Unlock()
		_ = d.notifier.NotifyPopulateCompleted(context.WithoutCancel(jobCtx),
			result.Fetched, result.Skipped, result.Failed, result.Duration)
	}()

	select {
	case id := <-jobID:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// LastPopulate returns the most recent completed populate result, if any.
func (d *Daemon) LastPopulate() *catalog.PopulateResult {
	d.populateMu.Lock()
	defer d.populateMu.Unlock()
	return d.lastPopulate
}

// DatabaseHealth inspects the dex database.
func (d *Daemon) DatabaseHealth(ctx context.Context) store.DatabaseHealth {
	return d.store.Health(ctx)
}

// TestNotification sends a test push through the configured notifier.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "notifications are not configured; set ntfy_topic in config.toml", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "", err
	}
	return true, "test notification sent", nil
}

func (d *Daemon) populateRunning() bool {
	d.populateMu.Lock()
	defer d.populateMu.Unlock()
	return d.populateCancel != nil
}

func (d *Daemon) cancelPopulate() {
	d.populateMu.Lock()
	cancel := d.populateCancel
	d.populateMu.Unlock()
	if cancel != nil {
		cancel()
	}
}
