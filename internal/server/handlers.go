package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/pipeline"
	"github.com/selivandex/crypto-news/pkg/logger"
	"github.com/selivandex/crypto-news/pkg/models"
	"github.com/selivandex/crypto-news/pkg/retry"
)

// newsResponse is the 200 body of the news endpoint.
type newsResponse struct {
	Query      string                 `json:"query"`
	FetchedAt  string                 `json:"fetchedAt"`
	CacheUntil string                 `json:"cacheUntil"`
	Articles   []models.CachedArticle `json:"articles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var validSentiments = map[string]bool{
	"positive": true,
	"negative": true,
	"neutral":  true,
	"all":      true,
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequest(newRequestID())

	sentimentParam := strings.ToLower(r.URL.Query().Get("sentiment"))
	if sentimentParam == "" {
		sentimentParam = "all"
	}
	if !validSentiments[sentimentParam] {
		writeError(w, http.StatusBadRequest, "Invalid sentiment parameter. Must be: positive, negative, neutral, or all")
		return
	}

	log.Info("crypto news request received", zap.String("sentiment", sentimentParam))

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	entry, err := s.pipe.Run(ctx, log)
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			log.Error("upstream fetch exhausted", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "News service temporarily unavailable")
			return
		}
		log.Error("news request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	filtered := pipeline.FilterBySentiment(entry.Articles, sentimentParam)

	resp := newsResponse{
		Query:      s.pipe.Query(),
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		CacheUntil: time.Unix(entry.TTL, 0).UTC().Format(time.RFC3339),
		Articles:   filtered,
	}

	log.Info("response prepared",
		zap.Int("article_count", len(filtered)),
		zap.String("sentiment", sentimentParam),
	)

	writeJSON(w, http.StatusOK, resp)
}

// historyResponse is the 200 body of the news history endpoint.
type historyResponse struct {
	Sentiment  string                   `json:"sentiment"`
	SinceHours int                      `json:"sinceHours"`
	Articles   []models.EnrichedArticle `json:"articles"`
}

var historyLabels = map[string]models.Sentiment{
	"positive": models.SentimentPositive,
	"negative": models.SentimentNegative,
	"neutral":  models.SentimentNeutral,
}

// handleHistory serves archived enriched articles. The archive holds one
// concrete label per row, so unlike /news there is no "all" here.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequest(newRequestID())

	if s.history == nil {
		writeError(w, http.StatusNotFound, "News history is not enabled")
		return
	}

	sentimentParam := strings.ToLower(r.URL.Query().Get("sentiment"))
	if sentimentParam == "" {
		sentimentParam = "negative"
	}
	label, ok := historyLabels[sentimentParam]
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sentiment parameter. Must be: positive, negative, or neutral")
		return
	}

	hours, err := queryInt(r, "hours", 24, 1, 168)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours parameter. Must be a number between 1 and 168")
		return
	}
	limit, err := queryInt(r, "limit", 20, 1, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit parameter. Must be a number between 1 and 100")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	articles, err := s.history.RecentBySentiment(ctx, label, time.Duration(hours)*time.Hour, limit)
	if err != nil {
		log.Error("history query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info("history response prepared",
		zap.String("sentiment", sentimentParam),
		zap.Int("hours", hours),
		zap.Int("article_count", len(articles)),
	)

	writeJSON(w, http.StatusOK, historyResponse{
		Sentiment:  sentimentParam,
		SinceHours: hours,
		Articles:   articles,
	})
}

// queryInt parses an optional bounded integer query parameter.
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s out of range: %d", name, n)
	}
	return n, nil
}

func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
