// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

type corpus map[types.Category]map[string]types.Entry

func (c corpus) Entries(cat types.Category) (map[string]types.Entry, error) {
	return c[cat], nil
}

func scenario() corpus {
	return corpus{
		types.CategoryCharacters: {
			"hero": {
				Name:        "Tharos the Wise",
				Category:    types.CategoryCharacters,
				Description: "An archmage who guards the old ways.",
				Tags:        []string{"mage", "zeloria"},
				Relationships: []types.Relationship{
					{TargetID: "city", Type: types.RelLocatedIn, Strength: 8},
				},
			},
			"villain": {
				Name:        "Morvane",
				Category:    types.CategoryCharacters,
				Description: "A renegade sorcerer hunting forbidden relics.",
				Tags:        []string{"mage"},
			},
		},
		types.CategoryLocations: {
			"city": {
				Name:        "Zeloria",
				Category:    types.CategoryLocations,
				Description: "The walled capital of the eastern reaches.",
				Tags:        []string{"capital"},
			},
		},
	}
}

func newTestServer(t *testing.T, data corpus) (*Server, *httptest.Server) {
	t.Helper()
	eng := lore.NewEngine(types.EngineConfig{FuzzyThreshold: 0.2}, data, zap.NewNop())
	s := New(types.ServerConfig{}, eng, zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	return resp.StatusCode, body
}

func post(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/health")
	require.Equal(t, http.StatusOK, status)

	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, 3, health["entries"])
}

func TestSearchEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/search?q=tharos")
	require.Equal(t, http.StatusOK, status)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "tharos", resp.Query)
	require.GreaterOrEqual(t, resp.Count, 1)
	assert.Equal(t, "hero", resp.Results[0].Entry.ID)
}

func TestSearchValidation(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/search?q=x&limit=abc")
	assert.Equal(t, http.StatusBadRequest, status)
	var e errorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Contains(t, e.Error, "limit")

	status, _ = get(t, ts.URL+"/api/v1/search?q=x&category=weather")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetEntry(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/entries/hero")
	require.Equal(t, http.StatusOK, status)
	var entry types.Entry
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.Equal(t, "Tharos the Wise", entry.Name)

	status, _ = get(t, ts.URL+"/api/v1/entries/ghost")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListEntries(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/entries")
	require.Equal(t, http.StatusOK, status)
	var all listResponse
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, 3, all.Count)

	status, body = get(t, ts.URL+"/api/v1/entries?category=locations")
	require.Equal(t, http.StatusOK, status)
	var locs listResponse
	require.NoError(t, json.Unmarshal(body, &locs))
	require.Equal(t, 1, locs.Count)
	assert.Equal(t, "city", locs.Entries[0].ID)

	status, body = get(t, ts.URL+"/api/v1/entries?limit=1")
	require.Equal(t, http.StatusOK, status)
	var capped listResponse
	require.NoError(t, json.Unmarshal(body, &capped))
	assert.Equal(t, 1, capped.Count)
}

func TestRelatedEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/entries/hero/related")
	require.Equal(t, http.StatusOK, status)
	var resp relatedResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "city", resp.Results[0].Entry.ID)
	assert.Equal(t, 8.0, resp.Results[0].Edge.Strength)
	assert.Equal(t, 1, resp.Results[0].Depth)

	// Unknown ids degrade to an empty result, not an error.
	status, body = get(t, ts.URL+"/api/v1/entries/ghost/related")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestRelatedValidation(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, _ := get(t, ts.URL+"/api/v1/entries/hero/related?type=knows_of")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, ts.URL+"/api/v1/entries/hero/related?depth=deep")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSuggestEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/entries/hero/suggest")
	require.Equal(t, http.StatusOK, status)
	var resp suggestResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.GreaterOrEqual(t, resp.Count, 1)
	assert.Equal(t, "villain", resp.Suggestions[0].Entry.ID)
}

func TestStatsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/stats")
	require.Equal(t, http.StatusOK, status)
	var stats lore.Statistics
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 1, stats.TotalRelationships)
	assert.Equal(t, []string{"villain"}, stats.OrphanedEntries)
}

func TestGraphEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	status, body := get(t, ts.URL+"/api/v1/graph")
	require.Equal(t, http.StatusOK, status)
	var full lore.GraphView
	require.NoError(t, json.Unmarshal(body, &full))
	assert.Len(t, full.Nodes, 3)
	assert.Len(t, full.Edges, 1)

	status, body = get(t, ts.URL+"/api/v1/graph?ids=hero,villain")
	require.Equal(t, http.StatusOK, status)
	var induced lore.GraphView
	require.NoError(t, json.Unmarshal(body, &induced))
	assert.Len(t, induced.Nodes, 2)
	assert.Empty(t, induced.Edges)
}

func TestRefreshEndpoint(t *testing.T) {
	data := scenario()
	_, ts := newTestServer(t, data)

	data[types.CategoryCreatures] = map[string]types.Entry{
		"dragon": {Name: "Emberwyrm", Category: types.CategoryCreatures, Description: "An old fire drake."},
	}

	status, body := post(t, ts.URL+"/api/v1/refresh")
	require.Equal(t, http.StatusOK, status)
	var resp refreshResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "refreshed", resp.Status)
	assert.Equal(t, 4, resp.Stats.Entries)

	status, body = get(t, ts.URL+"/api/v1/entries")
	require.Equal(t, http.StatusOK, status)
	var all listResponse
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, 4, all.Count)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, scenario())

	// Generate one measured request first.
	status, _ := get(t, ts.URL+"/api/v1/search?q=tharos")
	require.Equal(t, http.StatusOK, status)

	status, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	text := string(body)
	assert.Contains(t, text, "lore_engine_http_requests_total")
	assert.Contains(t, text, "lore_engine_search_duration_seconds")
	assert.Contains(t, text, "lore_engine_indexed_entries 3")
	assert.True(t, strings.Contains(text, `route="/api/v1/search"`), "counter should label the chi route pattern")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	eng := lore.NewEngine(types.EngineConfig{}, scenario(), zap.NewNop())
	s := New(types.ServerConfig{Addr: "127.0.0.1:0"}, eng, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := newWatcher(dir, 50*time.Millisecond, func() { calls.Add(1) }, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		content := fmt.Sprintf(`{"rev":%d}`, i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "characters.json"), []byte(content), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 },
		2*time.Second, 10*time.Millisecond, "watcher never fired")

	// The whole burst lands within one debounce window.
	time.Sleep(150 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestWatcherIgnoresScratchFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := newWatcher(dir, 30*time.Millisecond, func() { calls.Add(1) }, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters.1234.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lore.lock"), nil, 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
