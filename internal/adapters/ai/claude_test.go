package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/selivandex/crypto-news/pkg/models"
)

func newClaudeTestServer(t *testing.T, handler http.HandlerFunc) (*ClaudeClassifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClaudeClassifier("test-key", "test-model")
	c.baseURL = srv.URL
	return c, srv
}

func claudeReply(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(body)
}

func TestClaudeClassifier_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a well-formed reply", func(t *testing.T) {
		c, _ := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("x-api-key"); got != "test-key" {
				t.Errorf("x-api-key = %q", got)
			}
			if got := r.Header.Get("anthropic-version"); got == "" {
				t.Error("anthropic-version header missing")
			}

			var req struct {
				Model  string `json:"model"`
				System string `json:"system"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			if req.Model != "test-model" {
				t.Errorf("model = %q", req.Model)
			}
			if req.System == "" {
				t.Error("system prompt missing")
			}

			fmt.Fprint(w, claudeReply(`{"sentiment": "Negative", "score": 0.15}`))
		})

		result, err := c.Classify(ctx, "Exchange hacked", "Funds drained overnight")
		if err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		if result.Sentiment != models.SentimentNegative || result.Score != 0.15 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("malformed model text fails the tier", func(t *testing.T) {
		c, _ := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, claudeReply("I think this article is positive."))
		})

		if _, err := c.Classify(ctx, "title", "snippet"); err == nil {
			t.Fatal("expected parse failure to surface as an error")
		}
	})

	t.Run("non-200 status fails the tier", func(t *testing.T) {
		c, _ := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
		})

		if _, err := c.Classify(ctx, "title", "snippet"); err == nil {
			t.Fatal("expected API error to surface")
		}
	})

	t.Run("empty content fails the tier", func(t *testing.T) {
		c, _ := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"content": []}`)
		})

		if _, err := c.Classify(ctx, "title", "snippet"); err == nil {
			t.Fatal("expected empty reply to surface as an error")
		}
	})
}
