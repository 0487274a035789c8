package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

func TestGroqGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Content != "prompt" {
			t.Fatalf("unexpected messages %+v", payload.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{}"}}]}`))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "llama-3.1-8b-instant"})
	got, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "{}" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestGroqGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantModel bool
	}{
		{"model not found", http.StatusNotFound, `{"error":{"message":"model does not exist","code":"model_not_found"}}`, true},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, false},
		{"no choices", http.StatusOK, `{"choices":[]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := NewGroqClient(&config.LLMConfig{APIKey: "k", BaseURL: ts.URL, Model: "m"})
			_, err := client.Generate(context.Background(), "p")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrModelUnavailable); got != tt.wantModel {
				t.Fatalf("errors.Is(ErrModelUnavailable) = %v for %v", got, err)
			}
		})
	}
}
