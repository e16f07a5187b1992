package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"pokedexd/internal/config"
	"pokedexd/internal/dex"
	"pokedexd/internal/logging"
	"pokedexd/internal/pokeapi"
	"pokedexd/internal/store"
)

// Catalog resolves dex records cache-first and persists API results.
type Catalog struct {
	cfg    *config.Config
	store  *store.Store
	client *pokeapi.Client
	logger *slog.Logger
}

// New builds a catalog over the given store and API client.
func New(cfg *config.Config, st *store.Store, client *pokeapi.Client, logger *slog.Logger) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.New("catalog requires configuration")
	}
	if st == nil {
		return nil, errors.New("catalog requires a store")
	}
	if client == nil {
		return nil, errors.New("catalog requires an api client")
	}
	return &Catalog{
		cfg:    cfg,
		store:  st,
		client: client,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}, nil
}

// Record resolves a record by identifier. Cached records are served without
// touching the network; misses are fetched, persisted, and returned.
func (c *Catalog) Record(ctx context.Context, id int64) (*dex.Record, error) {
	if id < c.cfg.Dex.MinID || id > c.cfg.Dex.MaxID {
		return nil, Wrap(ErrValidation, "catalog", "record",
			fmt.Sprintf("identifier %d outside dex range %d..%d", id, c.cfg.Dex.MinID, c.cfg.Dex.MaxID), nil)
	}

	cached, err := c.store.GetRecord(ctx, id)
	if err != nil {
		return nil, Wrap(nil, "catalog", "record", "read cache", err)
	}
	if cached != nil {
		return cached, nil
	}

	return c.fetchAndStore(ctx, strconv.FormatInt(id, 10))
}

// RecordByName resolves a record by its lowercase API name.
func (c *Catalog) RecordByName(ctx context.Context, name string) (*dex.Record, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, Wrap(ErrValidation, "catalog", "record", "name must not be empty", nil)
	}

	cached, err := c.store.GetRecordByName(ctx, name)
	if err != nil {
		return nil, Wrap(nil, "catalog", "record", "read cache", err)
	}
	if cached != nil {
		return cached, nil
	}

	return c.fetchAndStore(ctx, name)
}

// Cached reports whether a record is already stored locally.
func (c *Catalog) Cached(ctx context.Context, id int64) (bool, error) {
	rec, err := c.store.GetRecord(ctx, id)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Evolutions returns the stored evolution chain reachable from the record.
func (c *Catalog) Evolutions(ctx context.Context, id int64) ([]dex.Evolution, error) {
	return c.store.EvolutionChain(ctx, id)
}

// Refresh forces a network fetch for a record, replacing the cached copy.
func (c *Catalog) Refresh(ctx context.Context, id int64) (*dex.Record, error) {
	return c.fetchAndStore(ctx, strconv.FormatInt(id, 10))
}

// fetchAndStore pulls a record plus species data from the API, persists it
// together with its evolution chain, and returns the stored record.
func (c *Catalog) fetchAndStore(ctx context.Context, ref string) (*dex.Record, error) {
	payload, err := c.client.Pokemon(ctx, ref)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, Wrap(ErrNotFound, "catalog", "fetch", fmt.Sprintf("no record matches %q", ref), nil)
		}
		return nil, Wrap(ErrUnavailable, "catalog", "fetch", "pokemon request", err)
	}

	species, err := c.client.Species(ctx, payload.Species.Name)
	if err != nil && !errors.Is(err, pokeapi.ErrNotFound) {
		// Species data enriches the record but is not required for caching.
		c.logger.Warn("species fetch failed",
			logging.Int64(logging.FieldRecordID, payload.ID),
			logging.Error(err))
		species = nil
	}

	rec, err := pokeapi.ToRecord(payload, species, c.client.Language())
	if err != nil {
		return nil, Wrap(ErrValidation, "catalog", "fetch", "convert payload", err)
	}

	if err := c.store.PutRecord(ctx, rec); err != nil {
		return nil, Wrap(nil, "catalog", "fetch", "persist record", err)
	}

	if species != nil && species.EvolutionChain.URL != "" {
		if err := c.storeEvolutions(ctx, species.EvolutionChain.URL); err != nil {
			c.logger.Warn("evolution chain fetch failed",
				logging.Int64(logging.FieldRecordID, rec.ID),
				logging.Error(err))
		}
	}

	c.logger.Info("record fetched",
		logging.Int64(logging.FieldRecordID, rec.ID),
		logging.String("name", rec.Name))
	return rec, nil
}

func (c *Catalog) storeEvolutions(ctx context.Context, chainURL string) error {
	edges, err := c.client.EvolutionChain(ctx, chainURL)
	if err != nil {
		return err
	}
	return c.store.PutEvolutions(ctx, pokeapi.ChainToEvolutions(edges))
}
