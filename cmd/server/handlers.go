package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"vizhener/internal/cipher"
	"vizhener/internal/cracker"
	"vizhener/internal/dictionary"
	"vizhener/internal/logging"
	"vizhener/pkg/options"
)

// wordStore is the persistent side of the custom dictionary.
type wordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

type server struct {
	engine *cipher.Engine
	norm   *cipher.Normalizer
	corpus *dictionary.Corpus
	store  wordStore // nil when Redis is not configured
	opts   []options.Options

	mu     sync.RWMutex
	custom map[string]struct{}
	index  *dictionary.Index // corpus + custom, rebuilt on every change
}

func newServer(corpus *dictionary.Corpus, store wordStore, custom []string, opts ...options.Options) *server {
	a := cipher.MustAlphabet(cipher.Russian)
	s := &server{
		engine: cipher.NewEngine(a),
		norm:   cipher.NewNormalizer(a),
		corpus: corpus,
		store:  store,
		opts:   opts,
		custom: make(map[string]struct{}),
	}
	for _, w := range custom {
		s.custom[w] = struct{}{}
	}
	s.rebuild()
	return s
}

// rebuild must be called with mu held for writing (or before s is shared).
func (s *server) rebuild() {
	words := make([]string, 0, len(s.custom))
	for w := range s.custom {
		words = append(words, w)
	}
	s.index = s.corpus.Index.With(words)
}

func (s *server) currentIndex() *dictionary.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/crack", s.handleCrack)
	mux.HandleFunc("/api/v1/decode", s.handleDecode)
	mux.HandleFunc("/api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("/api/v1/custom-word/", s.handleRemoveWord)
	return mux
}

func (s *server) handleCrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text string `json:"text"`
		Top  int    `json:"top"`
	}
	// blank text is not a bad request: Crack reports it as empty
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	opts := append([]options.Options{options.WithoutProgress()}, s.opts...)
	if req.Top > 0 {
		opts = append(opts, options.WithTopK(req.Top))
	}
	cr := cracker.New(s.engine, s.currentIndex(), opts...)
	rep, err := cr.Crack(r.Context(), req.Text, s.corpus.Candidates)
	if errors.Is(err, cracker.ErrEmptyCiphertext) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "ciphertext is empty after normalization",
			"total":   0,
			"results": []cracker.Result{},
		})
		return
	}
	if err != nil {
		logging.Errorf("crack: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ciphertext": rep.Ciphertext,
		"total":      rep.Total,
		"results":    rep.Top,
		"elapsed_ms": rep.Elapsed.Milliseconds(),
	})
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text string `json:"text"`
		Key  string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || s.norm.Letters(req.Key) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	text := s.norm.Normalize(strings.TrimSpace(req.Text))
	decoded := s.engine.Decode(text, req.Key)
	writeJSON(w, http.StatusOK, map[string]any{
		"key":     req.Key,
		"decoded": decoded,
		"score":   cracker.Score(decoded, s.currentIndex()),
	})
}

func (s *server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	word := s.norm.Normalize(strings.TrimSpace(req.Word))
	if word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word has no Russian letters"})
		return
	}
	if s.store != nil {
		if err := s.store.Add(r.Context(), word); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	s.mu.Lock()
	s.custom[word] = struct{}{}
	s.rebuild()
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	word := s.norm.Normalize(strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/"))
	if word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
		return
	}
	if s.store != nil {
		if err := s.store.Remove(r.Context(), word); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	s.mu.Lock()
	delete(s.custom, word)
	s.rebuild()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("write response: %v", err)
	}
}
