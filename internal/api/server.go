// Package api serves read-only village state over HTTP. There is no write
// surface: the simulation mutates itself, observers only watch.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/oakvale/villagesim/internal/engine"
	"github.com/oakvale/villagesim/internal/items"
)

// Server exposes one village manager over HTTP. The simulation loop and
// the HTTP handlers share the manager; the caller must pause ticking or
// accept mid-day reads (a single tick is atomic, handlers between ticks
// see consistent state).
type Server struct {
	Manager *engine.VillageManager
	Port    int
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/villagers", s.handleVillagers)
	mux.HandleFunc("/api/v1/villager/", s.handleVillagerDetail)
	mux.HandleFunc("/api/v1/sites", s.handleSites)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	day := s.Manager.Weather.Today()
	writeJSON(w, map[string]any{
		"village":     s.Manager.Name,
		"village_id":  s.Manager.ID.String(),
		"day":         s.Manager.Day,
		"season":      day.Season.String(),
		"condition":   day.Condition.String(),
		"temperature": day.Temperature,
		"stats":       s.Manager.Stats,
	})
}

func (s *Server) handleVillagers(w http.ResponseWriter, r *http.Request) {
	type villagerSummary struct {
		Name       string  `json:"name"`
		Age        int     `json:"age"`
		Occupation string  `json:"occupation"`
		Health     int     `json:"health"`
		Happiness  int     `json:"happiness"`
		Energy     int     `json:"energy"`
		Money      float64 `json:"money"`
	}

	villagers := s.Manager.Villagers()
	out := make([]villagerSummary, 0, len(villagers))
	for _, v := range villagers {
		out = append(out, villagerSummary{
			Name:       v.Name,
			Age:        v.Age,
			Occupation: string(v.Occupation),
			Health:     v.Health,
			Happiness:  v.Happiness,
			Energy:     v.Energy,
			Money:      v.Money,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleVillagerDetail(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path[len("/api/v1/villager/"):]
	v, ok := s.Manager.Villager(name)
	if !ok {
		http.Error(w, "no such villager", http.StatusNotFound)
		return
	}

	inventory := make(map[string]int, len(v.Inventory))
	for id, qty := range v.Inventory {
		inventory[items.Name(id)] = qty
	}
	writeJSON(w, map[string]any{
		"name":       v.Name,
		"age":        v.Age,
		"occupation": string(v.Occupation),
		"health":     v.Health,
		"happiness":  v.Happiness,
		"energy":     v.Energy,
		"money":      v.Money,
		"skills":     v.Skills,
		"inventory":  inventory,
		"history":    len(v.History),
	})
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	m := s.Manager
	writeJSON(w, map[string]any{
		"forest": map[string]any{
			"name":         m.Forest.Name,
			"mature_trees": m.Forest.MatureTrees,
			"young_trees":  m.Forest.YoungTrees,
			"saplings":     m.Forest.Saplings,
			"wildlife":     m.Forest.Wildlife,
			"health":       m.Forest.Health,
			"fire_risk":    m.Forest.FireRisk,
		},
		"river": map[string]any{
			"name":      m.River.Name,
			"fish":      m.River.Fish,
			"pollution": m.River.Pollution,
			"flow_rate": m.River.FlowRate,
			"frozen":    m.River.Frozen,
		},
		"tannery": map[string]any{
			"name":          m.Tannery.Name,
			"operational":   m.Tannery.Operational,
			"hides_today":   m.Tannery.HidesProcessedToday,
			"capacity_left": m.Tannery.RemainingCapacity(),
		},
		"field": map[string]any{
			"name":         m.Field.Name,
			"sown":         m.Field.Sown,
			"growth":       m.Field.Growth,
			"crop_health":  m.Field.CropHealth,
			"soil_quality": m.Field.SoilQuality,
			"ready":        m.Field.Ready(),
		},
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, s.Manager.RecentEvents(limit))
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
