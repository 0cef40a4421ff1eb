package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openai/openai-go/option"

	"github.com/minhyannv/chat-cli/pkg/chat"
	configpkg "github.com/minhyannv/chat-cli/pkg/config"
)

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := configpkg.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = server.URL
	cfg.Model = "test-model"
	return New(cfg, WithRequestOptions(option.WithMaxRetries(0)))
}

func TestCompleteSendsWholeTranscript(t *testing.T) {
	var got recordedRequest
	var auth string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "Hi there"}
			}]
		}`))
	})

	reply, err := p.Complete(context.Background(), []chat.Message{
		chat.SystemMessage("You are a helpful AI assistant."),
		chat.UserMessage("A"),
		chat.AssistantMessage("reply A"),
		chat.UserMessage("Hello"),
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "Hi there" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", auth)
	}
	if got.Model != "test-model" {
		t.Fatalf("unexpected model: %q", got.Model)
	}

	type entry struct{ Role, Content string }
	var entries []entry
	for _, m := range got.Messages {
		entries = append(entries, entry{m.Role, m.Content})
	}
	want := []entry{
		{"system", "You are a helpful AI assistant."},
		{"user", "A"},
		{"assistant", "reply A"},
		{"user", "Hello"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("unexpected request messages (-want +got):\n%s", diff)
	}
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	})

	_, err := p.Complete(context.Background(), []chat.Message{chat.UserMessage("Hello")})
	if err == nil {
		t.Fatal("expected error from provider")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status code in error, got: %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "test-model", "choices": []}`))
	})

	_, err := p.Complete(context.Background(), []chat.Message{chat.UserMessage("Hello")})
	if err == nil || !strings.Contains(err.Error(), "empty completion choices") {
		t.Fatalf("expected empty choices error, got: %v", err)
	}
}

func TestToOpenAIMessagesRejectsInvalidRole(t *testing.T) {
	_, err := toOpenAIMessages([]chat.Message{{Role: "tool", Content: "bad"}})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestToOpenAIMessagesKeepsOrder(t *testing.T) {
	out, err := toOpenAIMessages([]chat.Message{
		chat.SystemMessage("sys"),
		chat.UserMessage("hello"),
		chat.AssistantMessage("hi"),
	})
	if err != nil {
		t.Fatalf("toOpenAIMessages returned error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(out))
	}
	if out[0].OfSystem == nil || out[1].OfUser == nil || out[2].OfAssistant == nil {
		t.Fatalf("unexpected role mapping: %#v", out)
	}
}

func TestCompleteInvalidRoleSkipsRequest(t *testing.T) {
	hits := 0
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Complete(context.Background(), []chat.Message{
		chat.SystemMessage("sys"),
		{Role: "tool", Content: "bad"},
	})
	if err == nil || !strings.Contains(err.Error(), `invalid message role at index 1: "tool"`) {
		t.Fatalf("expected invalid role error, got: %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no request for invalid input, got %d", hits)
	}
}
