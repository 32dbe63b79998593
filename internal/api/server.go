// Package api provides the read-only HTTP API for observing simulation
// state. All endpoints are GET.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/talgya/praxis/internal/engine"
	"github.com/talgya/praxis/internal/persistence"
)

// Server serves simulation state over HTTP.
type Server struct {
	Sim  *engine.Simulation
	Eng  *engine.Engine
	DB   *persistence.DB
	Port int
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/actors", s.handleActors)
	mux.HandleFunc("/api/v1/actor/", s.handleActorDetail)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tick":     s.Eng.Tick,
		"sim_time": engine.SimTime(s.Eng.Tick),
		"speed":    s.Eng.Speed,
		"stats":    s.Sim.Snapshot(),
	})
}

// actorSummary is the list view of one actor.
type actorSummary struct {
	Name       string            `json:"name"`
	Goals      int               `json:"goals"`
	Items      int               `json:"items"`
	Dormant    int               `json:"dormant"`
	BestByItem map[string]string `json:"best_by_item"`
}

func (s *Server) handleActors(w http.ResponseWriter, r *http.Request) {
	out := make([]actorSummary, 0, len(s.Sim.Actors))
	for _, state := range s.Sim.Actors {
		a := state.Actor
		best := make(map[string]string)
		for _, item := range a.Items() {
			if goal, ok := a.BestGoal(item); ok {
				best[string(item)] = string(goal)
			}
		}
		out = append(out, actorSummary{
			Name:       a.Name,
			Goals:      len(a.Hierarchy),
			Items:      len(a.Preferences),
			Dormant:    len(state.Dormant),
			BestByItem: best,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

// queueView is one item's preference queue in an actor detail response.
type queueView struct {
	Item     string `json:"item"`
	Length   int    `json:"length"`
	BestGoal string `json:"best_goal,omitempty"`
}

func (s *Server) handleActorDetail(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/actor/")
	for _, state := range s.Sim.Actors {
		if state.Actor.Name != name {
			continue
		}
		a := state.Actor

		hierarchy := make(map[string]int, len(a.Hierarchy))
		for goal, rank := range a.Hierarchy {
			hierarchy[string(goal)] = rank
		}

		queues := make([]queueView, 0, len(a.Preferences))
		for item, q := range a.Preferences {
			v := queueView{Item: string(item), Length: q.Len()}
			if top := q.Peek(); top != nil {
				v.BestGoal = string(top.Record.Goal)
			}
			queues = append(queues, v)
		}
		sort.Slice(queues, func(i, j int) bool { return queues[i].Item < queues[j].Item })

		writeJSON(w, http.StatusOK, map[string]any{
			"name":      a.Name,
			"hierarchy": hierarchy,
			"queues":    queues,
			"dormant":   state.Dormant,
		})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown actor"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	// Recent in-memory events first; fall back to the database when the
	// buffer has been drained by a save.
	events := s.Sim.Events
	if len(events) == 0 && s.DB != nil {
		var err error
		events, err = s.DB.RecentEvents(limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	writeJSON(w, http.StatusOK, events)
}
