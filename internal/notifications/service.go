package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pokedexd/internal/config"
)

const userAgent = "Pokedexd/0.1.0"

// Service defines the notification surface exposed to daemon components.
type Service interface {
	NotifyPopulateStarted(ctx context.Context, jobID string) error
	NotifyPopulateCompleted(ctx context.Context, fetched, skipped, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		populateEvents: cfg.Notifications.Populate,
		errorEvents:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	populateEvents bool
	errorEvents    bool
}

func (n *ntfyService) NotifyPopulateStarted(ctx context.Context, jobID string) error {
	if !n.populateEvents {
		return nil
	}
	data := payload{
		title:   "Pokedex - Populate Started",
		message: fmt.Sprintf("Started dex sync (job %s)", strings.TrimSpace(jobID)),
		tags:    []string{"pokedex", "populate", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPopulateCompleted(ctx context.Context, fetched, skipped, failed int, duration time.Duration) error {
	if !n.populateEvents {
		return nil
	}

	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title, message string
	if failed == 0 {
		title = "Pokedex - Populate Complete"
		message = fmt.Sprintf("Dex sync complete: %d fetched, %d already cached in %s", fetched, skipped, durationText)
	} else {
		title = "Pokedex - Populate Complete (with errors)"
		message = fmt.Sprintf("Dex sync complete: %d fetched, %d already cached, %d failed in %s", fetched, skipped, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"pokedex", "populate", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorEvents {
		return nil
	}

	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Pokedex - Error",
		message:  builder.String(),
		tags:     []string{"pokedex", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Pokedex - Test",
		message:  "Notification system test",
		tags:     []string{"pokedex", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyPopulateStarted(context.Context, string) error { return nil }
func (noopService) NotifyPopulateCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
