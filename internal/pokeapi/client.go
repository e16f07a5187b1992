package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound reports that the API has no record matching the reference.
var ErrNotFound = errors.New("pokeapi: not found")

// Client provides access to the PokeAPI.
type Client struct {
	baseURL    string
	language   string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetries overrides the retry budget and base backoff delay.
func WithRetries(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxRetries = attempts
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// New creates a PokeAPI client.
func New(baseURL, lang string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pokeapi base url required")
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = "en"
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   lang,
		maxRetries: 3,
		retryDelay: time.Second,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Language returns the configured flavor text language.
func (c *Client) Language() string {
	return c.language
}

// Pokemon fetches a pokemon by identifier or lowercase name.
func (c *Client) Pokemon(ctx context.Context, ref string) (*Pokemon, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, errors.New("pokemon reference must not be empty")
	}
	var payload Pokemon
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(ref), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Species fetches species data (flavor text, evolution chain reference).
func (c *Client) Species(ctx context.Context, ref string) (*Species, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, errors.New("species reference must not be empty")
	}
	var payload Species
	if err := c.getJSON(ctx, c.baseURL+"/pokemon-species/"+url.PathEscape(ref), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// EvolutionChain fetches and flattens the chain behind the given URL.
func (c *Client) EvolutionChain(ctx context.Context, chainURL string) ([]ChainEdge, error) {
	chainURL = strings.TrimSpace(chainURL)
	if chainURL == "" {
		return nil, errors.New("evolution chain url must not be empty")
	}
	var payload evolutionChainPayload
	if err := c.getJSON(ctx, chainURL, &payload); err != nil {
		return nil, err
	}
	var edges []ChainEdge
	flattenChain(payload.Chain, &edges)
	return edges, nil
}

// Index fetches one page of the pokemon listing.
func (c *Client) Index(ctx context.Context, limit, offset int) (*IndexPage, error) {
	if limit <= 0 {
		return nil, errors.New("index limit must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/pokemon")
	if err != nil {
		return nil, fmt.Errorf("parse index url: %w", err)
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	endpoint.RawQuery = params.Encode()

	var payload IndexPage
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// getJSON performs a GET with retry on transient failures and decodes into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.getJSONOnce(ctx, endpoint, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("pokeapi request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) getJSONOnce(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("pokeapi returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode pokeapi response: %w", err)
	}
	return nil
}

// ChainEdge is a flattened evolution step keyed by species identifiers.
type ChainEdge struct {
	FromID   int64
	ToID     int64
	Trigger  string
	MinLevel int
	Item     string
}

func flattenChain(link chainLink, out *[]ChainEdge) {
	fromID := idFromResourceURL(link.Species.URL)
	for _, next := range link.EvolvesTo {
		edge := ChainEdge{
			FromID: fromID,
			ToID:   idFromResourceURL(next.Species.URL),
		}
		if len(next.EvolutionDetails) > 0 {
			detail := next.EvolutionDetails[0]
			edge.Trigger = detail.Trigger.Name
			if detail.MinLevel != nil {
				edge.MinLevel = *detail.MinLevel
			}
			if detail.Item != nil {
				edge.Item = detail.Item.Name
			}
		}
		*out = append(*out, edge)
		flattenChain(next, out)
	}
}

// ID derives the numeric identifier from an index entry URL.
func (e IndexEntry) ID() int64 {
	return idFromResourceURL(e.URL)
}

// idFromResourceURL extracts the trailing numeric segment of a PokeAPI
// resource URL such as https://pokeapi.co/api/v2/pokemon/25/.
func idFromResourceURL(resource string) int64 {
	trimmed := strings.TrimRight(strings.TrimSpace(resource), "/")
	if trimmed == "" {
		return 0
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0
	}
	id, err := strconv.ParseInt(trimmed[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
