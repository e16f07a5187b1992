package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"pokedexd/internal/catalog"
	"pokedexd/internal/config"
	"pokedexd/internal/display"
	"pokedexd/internal/input"
	"pokedexd/internal/logging"
	"pokedexd/internal/store"
)

// State identifies the active screen.
type State string

const (
	StateBrowsing   State = "browsing"
	StateDetail     State = "detail"
	StateFavourites State = "favourites"
)

// Input is a logical navigation action decoded from a button press.
type Input string

const (
	InputNext            Input = "next"
	InputPrev            Input = "prev"
	InputSelect          Input = "select"
	InputBack            Input = "back"
	InputHome            Input = "home"
	InputToggleFavourite Input = "toggle-favourite"
)

// InputForButton maps the eight physical buttons onto logical inputs.
func InputForButton(button input.Button) (Input, bool) {
	switch button {
	case input.ButtonRight, input.ButtonDown:
		return InputNext, true
	case input.ButtonLeft, input.ButtonUp:
		return InputPrev, true
	case input.ButtonA:
		return InputSelect, true
	case input.ButtonB:
		return InputBack, true
	case input.ButtonStart:
		return InputHome, true
	case input.ButtonSelect:
		return InputToggleFavourite, true
	default:
		return "", false
	}
}

// Snapshot is a read-only view of controller state for the IPC surface.
type Snapshot struct {
	State  State  `json:"state"`
	Cursor int64  `json:"cursor"`
	Status string `json:"status"`
}

// Controller drives the views from logical inputs. All mutation happens on
// the Run goroutine or behind the mutex when driven directly via Handle.
type Controller struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	store    *store.Store
	renderer display.Renderer
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	cursor     int64
	detailFrom State
	favIDs     []int64
	favIndex   int
	status     string
}

// New builds a controller starting in Browsing at the low edge of the dex.
func New(cfg *config.Config, cat *catalog.Catalog, st *store.Store, renderer display.Renderer, logger *slog.Logger) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("controller requires configuration")
	}
	if cat == nil {
		return nil, errors.New("controller requires a catalog")
	}
	if st == nil {
		return nil, errors.New("controller requires a store")
	}
	if renderer == nil {
		return nil, errors.New("controller requires a renderer")
	}
	return &Controller{
		cfg:        cfg,
		catalog:    cat,
		store:      st,
		renderer:   renderer,
		logger:     logging.NewComponentLogger(logger, "controller"),
		state:      StateBrowsing,
		cursor:     cfg.Dex.MinID,
		detailFrom: StateBrowsing,
	}, nil
}

// Run consumes events until the context ends or the channel closes. This is
// the only long-lived writer of controller state.
func (c *Controller) Run(ctx context.Context, events <-chan input.Event) {
	c.render(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			action, mapped := InputForButton(event.Button)
			if !mapped {
				continue
			}
			if err := c.Handle(ctx, action); err != nil {
				c.logger.Warn("input handling failed",
					logging.String(logging.FieldButton, string(event.Button)),
					logging.Error(err))
			}
		}
	}
}

// Handle applies one logical input and renders the resulting frame.
func (c *Controller) Handle(ctx context.Context, action Input) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = ""
	switch action {
	case InputNext:
		c.move(ctx, +1)
	case InputPrev:
		c.move(ctx, -1)
	case InputSelect:
		c.selectCurrent(ctx)
	case InputBack:
		c.back(ctx)
	case InputHome:
		c.state = StateBrowsing
	case InputToggleFavourite:
		c.toggleFavourite(ctx)
	default:
		return nil
	}
	return c.renderLocked(ctx)
}

// Snapshot returns the current state for status reporting.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Cursor: c.cursor, Status: c.status}
}

// move advances the cursor, wrapping at both dex edges. In the favourites
// view it cycles the favourites list instead.
func (c *Controller) move(ctx context.Context, delta int64) {
	if c.state == StateFavourites {
		c.refreshFavourites(ctx)
		if n := len(c.favIDs); n > 0 {
			c.favIndex = (c.favIndex + int(delta) + n) % n
		}
		return
	}
	if c.state == StateDetail {
		c.state = c.detailFrom
		if c.state == StateFavourites {
			c.move(ctx, delta)
			return
		}
	}

	minID, maxID := c.cfg.Dex.MinID, c.cfg.Dex.MaxID
	span := maxID - minID + 1
	c.cursor = minID + ((c.cursor-minID+delta)%span+span)%span
}

func (c *Controller) selectCurrent(ctx context.Context) {
	if c.state == StateFavourites {
		c.refreshFavourites(ctx)
		if len(c.favIDs) == 0 {
			c.status = "no favourites yet"
			return
		}
		c.cursor = c.favIDs[c.favIndex]
		c.detailFrom = StateFavourites
		c.state = StateDetail
		return
	}
	c.detailFrom = StateBrowsing
	c.state = StateDetail
}

// back leaves Detail toward its origin, toggles Browsing <-> Favourites.
func (c *Controller) back(ctx context.Context) {
	switch c.state {
	case StateDetail:
		c.state = c.detailFrom
	case StateFavourites:
		c.state = StateBrowsing
	default:
		c.refreshFavourites(ctx)
		c.favIndex = 0
		c.state = StateFavourites
	}
}

func (c *Controller) toggleFavourite(ctx context.Context) {
	id := c.cursor
	if c.state == StateFavourites {
		c.refreshFavourites(ctx)
		if len(c.favIDs) == 0 {
			c.status = "no favourites yet"
			return
		}
		id = c.favIDs[c.favIndex]
	}

	marked, err := c.store.ToggleFavourite(ctx, id)
	if err != nil {
		c.status = "fetch the record before favouriting"
		c.logger.Warn("favourite toggle failed",
			logging.Int64(logging.FieldRecordID, id),
			logging.Error(err))
		return
	}
	if marked {
		c.status = "added to favourites"
	} else {
		c.status = "removed from favourites"
	}
	if c.state == StateFavourites {
		c.refreshFavourites(ctx)
		if c.favIndex >= len(c.favIDs) && c.favIndex > 0 {
			c.favIndex = len(c.favIDs) - 1
		}
	}
}

func (c *Controller) refreshFavourites(ctx context.Context) {
	ids, err := c.store.Favourites(ctx)
	if err != nil {
		c.logger.Warn("favourites load failed", logging.Error(err))
		return
	}
	c.favIDs = ids
}

// render draws the current state without holding prior status.
func (c *Controller) render(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.renderLocked(ctx); err != nil {
		c.logger.Warn("render failed", logging.Error(err))
	}
}

func (c *Controller) renderLocked(ctx context.Context) error {
	frame := display.Frame{Cursor: c.cursor, Status: c.status}

	switch c.state {
	case StateFavourites:
		frame.View = display.ViewFavourites
		frame.FavIndex = c.favIndex
		records, err := c.store.ListRecords(ctx, store.ListFilter{FavouritesOnly: true})
		if err != nil {
			c.logger.Warn("favourites load failed", logging.Error(err))
		}
		frame.Favourites = records
	case StateDetail:
		frame.View = display.ViewDetail
		c.fillRecord(ctx, &frame)
		if frame.Record != nil {
			chain, err := c.catalog.Evolutions(ctx, frame.Record.ID)
			if err == nil {
				frame.Evolutions = chain
			}
		}
	default:
		frame.View = display.ViewBrowsing
		c.fillRecord(ctx, &frame)
	}

	frame.Status = c.status
	return c.renderer.Render(frame)
}

// fillRecord resolves the cursor cache-first and translates failures into
// status messages instead of errors.
func (c *Controller) fillRecord(ctx context.Context, frame *display.Frame) {
	rec, err := c.catalog.Record(ctx, c.cursor)
	switch {
	case err == nil:
		frame.Record = rec
		if fav, favErr := c.store.IsFavourite(ctx, rec.ID); favErr == nil {
			frame.IsFavourite = fav
		}
	case errors.Is(err, catalog.ErrNotFound):
		c.status = "not found"
	case catalog.Offline(err):
		if cached, cacheErr := c.store.GetRecord(ctx, c.cursor); cacheErr == nil && cached != nil {
			frame.Record = cached
			c.status = "offline, showing cached data"
		} else {
			c.status = "offline"
		}
	default:
		c.status = "not found"
	}
}
