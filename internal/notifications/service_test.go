package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pokedexd/internal/config"
	"pokedexd/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyPopulateStarted(context.Background(), "job-1"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.NotifyError(context.Background(), errors.New("boom"), "populate"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "populate started",
			send: func(svc notifications.Service) error {
				return svc.NotifyPopulateStarted(context.Background(), "job-42")
			},
			expectTitle:   "Pokedex - Populate Started",
			expectMessage: "Started dex sync (job job-42)",
			expectTags:    "pokedex,populate,started",
		},
		{
			name: "populate completed",
			send: func(svc notifications.Service) error {
				return svc.NotifyPopulateCompleted(context.Background(), 120, 31, 0, 90*time.Second)
			},
			expectTitle:   "Pokedex - Populate Complete",
			expectMessage: "Dex sync complete: 120 fetched, 31 already cached in 1m30s",
			expectTags:    "pokedex,populate,completed",
		},
		{
			name: "populate completed with failures",
			send: func(svc notifications.Service) error {
				return svc.NotifyPopulateCompleted(context.Background(), 10, 0, 2, time.Second)
			},
			expectTitle:   "Pokedex - Populate Complete (with errors)",
			expectMessage: "Dex sync complete: 10 fetched, 0 already cached, 2 failed in 1s",
			expectTags:    "pokedex,populate,completed",
		},
		{
			name: "error",
			send: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("socket gone"), "populate")
			},
			expectTitle:    "Pokedex - Error",
			expectMessage:  "Error with populate: socket gone",
			expectTags:     "pokedex,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			send: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Pokedex - Test",
			expectMessage:  "Notification system test",
			expectTags:     "pokedex,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.Populate = true
			cfg.Notifications.Errors = true

			svc := notifications.NewService(&cfg)
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceIgnoresSuppressedEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Populate = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyPopulateStarted(context.Background(), "job-1"); err != nil {
		t.Fatalf("expected suppressed populate event to return nil, got %v", err)
	}
	if err := svc.NotifyPopulateCompleted(context.Background(), 1, 2, 3, time.Second); err != nil {
		t.Fatalf("expected suppressed populate event to return nil, got %v", err)
	}
	if err := svc.NotifyError(context.Background(), errors.New("boom"), "test"); err != nil {
		t.Fatalf("expected suppressed error event to return nil, got %v", err)
	}
}
