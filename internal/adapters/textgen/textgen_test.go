package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

func TestOpenRouterClient_Generate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-123" {
			t.Errorf("Authorization = %q", auth)
		}
		if r.Header.Get("HTTP-Referer") != "https://housekeep.example" || r.Header.Get("X-Title") != appTitle {
			t.Errorf("attribution headers missing: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Shine on, counters!"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenRouterClient(config.TextGenConfig{
		APIKey:  "key-123",
		BaseURL: srv.URL + "/",
		Model:   "test/model",
		SiteURL: "https://housekeep.example",
	})

	text, err := client.Generate(context.Background(), ports.MessagePrompt{TaskName: "Wipe counters", Tone: entities.TonePlayful, MaxLength: 80})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Shine on, counters!" {
		t.Errorf("text = %q", text)
	}
	if got.Model != "test/model" || got.Temperature != 0.7 || len(got.Messages) != 2 {
		t.Errorf("request = %+v", got)
	}
	if !strings.Contains(got.Messages[0].Content, "playful") || got.Messages[1].Content != "Wipe counters" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestOpenRouterClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantLimited bool
		wantMessage string
	}{
		{
			name:        "Given a 429 When generating Then rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"message":"slow down"}}`,
			wantLimited: true,
			wantMessage: "slow down",
		},
		{
			name:        "Given a 500 When generating Then the API message is kept",
			status:      http.StatusInternalServerError,
			body:        `{"error":{"message":"model overloaded"}}`,
			wantMessage: "model overloaded",
		},
		{
			name:        "Given no choices When generating Then an error",
			status:      http.StatusOK,
			body:        `{"choices":[]}`,
			wantMessage: "no content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOpenRouterClient(config.TextGenConfig{APIKey: "k", BaseURL: srv.URL})
			_, err := client.Generate(context.Background(), ports.MessagePrompt{TaskName: "Dust", Tone: entities.ToneNeutral, MaxLength: 50})
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, entities.ErrRateLimited) != tt.wantLimited {
				t.Errorf("rate limited = %v, want %v (%v)", !tt.wantLimited, tt.wantLimited, err)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q does not mention %q", err, tt.wantMessage)
			}
		})
	}
}

func TestTemplateGenerator(t *testing.T) {
	gen := NewTemplateGenerator()

	for _, tone := range []entities.Tone{entities.ToneEncouraging, entities.TonePlayful, entities.ToneNeutral} {
		prompt := ports.MessagePrompt{TaskName: "Mop the floor", Tone: tone, MaxLength: 150}

		first, err := gen.Generate(context.Background(), prompt)
		if err != nil {
			t.Fatalf("Generate(%s) error = %v", tone, err)
		}
		second, _ := gen.Generate(context.Background(), prompt)
		if first != second {
			t.Errorf("Generate(%s) not stable: %q vs %q", tone, first, second)
		}
		if !strings.Contains(first, "Mop the floor") {
			t.Errorf("Generate(%s) = %q, missing task name", tone, first)
		}
	}

	short, _ := gen.Generate(context.Background(), ports.MessagePrompt{TaskName: "Dust", Tone: entities.ToneNeutral, MaxLength: 17})
	if short != "Dust, as planned." {
		t.Errorf("short message = %q, want the phrase that fits 17 runes", short)
	}
}

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, ports.MessagePrompt) (string, error) {
	return s.text, s.err
}

func TestFallback(t *testing.T) {
	prompt := ports.MessagePrompt{TaskName: "Dust", Tone: entities.ToneNeutral, MaxLength: 50}

	f := NewFallback(stubGenerator{err: errors.New("down")}, stubGenerator{text: "backup"}, logger.NewNop())
	if text, err := f.Generate(context.Background(), prompt); err != nil || text != "backup" {
		t.Errorf("Generate() = %q, %v; want backup", text, err)
	}

	f = NewFallback(stubGenerator{text: "primary"}, stubGenerator{text: "backup"}, logger.NewNop())
	if text, _ := f.Generate(context.Background(), prompt); text != "primary" {
		t.Errorf("Generate() = %q, want primary", text)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f = NewFallback(stubGenerator{err: context.Canceled}, stubGenerator{text: "backup"}, logger.NewNop())
	if _, err := f.Generate(ctx, prompt); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Generate() error = %v", err)
	}
}
