// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

type searchResponse struct {
	Query   string              `json:"query"`
	Count   int                 `json:"count"`
	Results []lore.SearchResult `json:"results"`
}

type listResponse struct {
	Count   int           `json:"count"`
	Entries []types.Entry `json:"entries"`
}

type relatedResponse struct {
	EntryID string              `json:"entry_id"`
	Count   int                 `json:"count"`
	Results []lore.RelatedEntry `json:"results"`
}

type suggestResponse struct {
	EntryID     string            `json:"entry_id"`
	Count       int               `json:"count"`
	Suggestions []lore.Suggestion `json:"suggestions"`
}

type refreshResponse struct {
	Status string          `json:"status"`
	Stats  lore.BuildStats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encoding response", zap.Error(err))
	}
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// intParam reads an integer query parameter. Absent means fallback; a
// non-numeric value is the caller's error.
func intParam(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"entries": s.eng.LastBuild().Entries,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	opts := lore.SearchOptions{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !types.Category(cat).Valid() {
			s.badRequest(w, "invalid category: "+cat)
			return
		}
		opts.Category = types.Category(cat)
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		opts.Tags = strings.Split(tags, ",")
	}
	limit, ok := intParam(r, "limit", 0)
	if !ok {
		s.badRequest(w, "invalid limit")
		return
	}
	opts.Limit = limit

	start := time.Now()
	results := s.eng.Search(q, opts)
	s.metrics.observeSearch(time.Since(start))

	s.writeJSON(w, http.StatusOK, searchResponse{Query: q, Count: len(results), Results: results})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	var category types.Category
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !types.Category(cat).Valid() {
			s.badRequest(w, "invalid category: "+cat)
			return
		}
		category = types.Category(cat)
	}
	limit, ok := intParam(r, "limit", 0)
	if !ok {
		s.badRequest(w, "invalid limit")
		return
	}

	entries := []types.Entry{}
	for _, e := range s.eng.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	s.writeJSON(w, http.StatusOK, listResponse{Count: len(entries), Entries: entries})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := s.eng.Entry(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "entry not found: " + id})
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var relType types.RelationType
	if t := r.URL.Query().Get("type"); t != "" {
		if !types.RelationType(t).Valid() {
			s.badRequest(w, "invalid relationship type: "+t)
			return
		}
		relType = types.RelationType(t)
	}
	depth, ok := intParam(r, "depth", 0)
	if !ok {
		s.badRequest(w, "invalid depth")
		return
	}

	results := s.eng.Related(id, relType, depth)
	s.writeJSON(w, http.StatusOK, relatedResponse{EntryID: id, Count: len(results), Results: results})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit, ok := intParam(r, "limit", 0)
	if !ok {
		s.badRequest(w, "invalid limit")
		return
	}

	suggestions := s.eng.Suggest(id, limit)
	s.writeJSON(w, http.StatusOK, suggestResponse{EntryID: id, Count: len(suggestions), Suggestions: suggestions})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.eng.Statistics())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}
	s.writeJSON(w, http.StatusOK, s.eng.GraphView(ids...))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.refresh()
	s.writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed", Stats: s.eng.LastBuild()})
}
