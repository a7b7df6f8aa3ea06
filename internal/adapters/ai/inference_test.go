package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/selivandex/crypto-news/pkg/models"
)

func TestInferenceClassifier_Classify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		reply         string
		wantSentiment models.Sentiment
		wantScore     float64
	}{
		{
			name:          "POSITIVE maps to explicit positive",
			reply:         `[{"label": "POSITIVE", "score": 0.97}]`,
			wantSentiment: models.SentimentPositive,
			wantScore:     0.97,
		},
		{
			// Explicit labels survive even when the confidence would
			// derive the opposite polarity.
			name:          "NEGATIVE maps to explicit negative regardless of score",
			reply:         `[{"label": "NEGATIVE", "score": 0.9}]`,
			wantSentiment: models.SentimentNegative,
			wantScore:     0.9,
		},
		{
			name:          "unknown label derives from score",
			reply:         `[{"label": "LABEL_1", "score": 0.8}]`,
			wantSentiment: models.SentimentPositive,
			wantScore:     0.8,
		},
		{
			name:          "empty result defaults to neutral midpoint",
			reply:         `[]`,
			wantSentiment: models.SentimentNeutral,
			wantScore:     0.5,
		},
		{
			name:          "zero score defaults to midpoint",
			reply:         `[{"label": "LABEL_0", "score": 0}]`,
			wantSentiment: models.SentimentNeutral,
			wantScore:     0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
					t.Errorf("Authorization = %q", got)
				}
				fmt.Fprint(w, tt.reply)
			}))
			defer srv.Close()

			c := NewInferenceClassifier(srv.URL, "test-key")
			result, err := c.Classify(ctx, "title", "snippet")
			if err != nil {
				t.Fatalf("classify failed: %v", err)
			}
			if result.Sentiment != tt.wantSentiment {
				t.Errorf("sentiment = %q, want %q", result.Sentiment, tt.wantSentiment)
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", result.Score, tt.wantScore)
			}
		})
	}

	t.Run("no auth header without an api key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "" {
				t.Errorf("unexpected Authorization header %q", got)
			}
			fmt.Fprint(w, `[{"label": "POSITIVE", "score": 0.9}]`)
		}))
		defer srv.Close()

		c := NewInferenceClassifier(srv.URL, "")
		if _, err := c.Classify(ctx, "title", "snippet"); err != nil {
			t.Fatalf("classify failed: %v", err)
		}
	})

	t.Run("non-200 status fails the tier", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewInferenceClassifier(srv.URL, "")
		if _, err := c.Classify(ctx, "title", "snippet"); err == nil {
			t.Fatal("expected API error to surface")
		}
	})

	t.Run("malformed body fails the tier", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"not": "an array"}`)
		}))
		defer srv.Close()

		c := NewInferenceClassifier(srv.URL, "")
		if _, err := c.Classify(ctx, "title", "snippet"); err == nil {
			t.Fatal("expected decode failure to surface")
		}
	})
}
