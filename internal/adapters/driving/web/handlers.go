package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// maxBodyBytes bounds topic request bodies.
const maxBodyBytes = 4 << 20

// searchResult is a match plus the location it navigates to.
type searchResult struct {
	domain.MatchResult
	URL string `json:"url"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type topicsResponse struct {
	Topics []domain.Topic `json:"topics"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches := s.cfg.Search.Search(r.Context(), query)
	resp := searchResponse{
		Query:   query,
		Results: make([]searchResult, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Results = append(resp.Results, searchResult{
			MatchResult: m,
			URL:         domain.NewNavigationTarget(m).Path(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.cfg.Topics.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topicsResponse{Topics: topics})
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := s.cfg.Topics.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := decodeTopic(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.cfg.Topics.Create(r.Context(), topic); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", apiPrefix+"/topics/"+topic.ID)
	writeJSON(w, http.StatusCreated, topic)
}

func (s *Server) handlePutTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := decodeTopic(r)
	if err != nil {
		writeError(w, err)
		return
	}
	topic.ID = mux.Vars(r)["id"]
	if err := s.cfg.Topics.Save(r.Context(), topic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Topics.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCorpusStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Corpus.Stats())
}

func (s *Server) handleInvalidate(w http.ResponseWriter, _ *http.Request) {
	s.cfg.Corpus.Invalidate()
	writeJSON(w, http.StatusOK, s.cfg.Corpus.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "no route for " + r.URL.Path})
}

func decodeTopic(r *http.Request) (*domain.Topic, error) {
	var topic domain.Topic
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&topic); err != nil {
		return nil, fmt.Errorf("%w: decoding topic: %w", domain.ErrInvalidInput, err)
	}
	return &topic, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("web request failed: %v", err)
	}
	msg := err.Error()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		msg = "malformed JSON body"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
