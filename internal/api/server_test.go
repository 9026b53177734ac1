package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/oakvale/villagesim/internal/config"
	"github.com/oakvale/villagesim/internal/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Village.InitialVillagers = 4
	m := engine.NewVillageManager(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.InitializeVillage()
	m.SimulateDailyTick()
	return &Server{Manager: m, Port: cfg.API.Port}
}

func TestStatusEndpoint(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest("GET", "/api/v1/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["day"].(float64) != 1 {
		t.Errorf("day = %v, want 1", body["day"])
	}
	if body["village"] != s.Manager.Name {
		t.Errorf("village = %v", body["village"])
	}
}

func TestVillagersEndpoint(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleVillagers(rec, httptest.NewRequest("GET", "/api/v1/villagers", nil))

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != s.Manager.Population() {
		t.Fatalf("villagers = %d, want %d", len(body), s.Manager.Population())
	}
}

func TestVillagerDetailNotFound(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/villager/Nobody", nil)
	s.handleVillagerDetail(rec, req)
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSitesEndpoint(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleSites(rec, httptest.NewRequest("GET", "/api/v1/sites", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"forest", "river", "tannery", "field"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing %s section", key)
		}
	}
}
