package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/talgya/praxis/internal/actors"
	"github.com/talgya/praxis/internal/economy"
	"github.com/talgya/praxis/internal/engine"
)

func newTestServer() *Server {
	a := actors.NewActor("crusoe",
		[]*actors.GoalRecord{
			actors.NewGoalRecord("hunger", 2),
		},
		[]actors.SatisfactionPair{
			{Goal: "hunger", Items: []economy.Item{"berries"}},
		},
	)
	state := &engine.ActorState{Actor: a, Items: []economy.Item{"berries"}}
	sim := engine.NewSimulation([]*engine.ActorState{state}, nil)
	return &Server{Sim: sim, Eng: engine.NewEngine()}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest("GET", "/api/v1/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["sim_time"]; !ok {
		t.Error("missing sim_time")
	}
}

func TestHandleActors(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.handleActors(rec, httptest.NewRequest("GET", "/api/v1/actors", nil))

	var body []actorSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].Name != "crusoe" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body[0].BestByItem["berries"] != "hunger" {
		t.Errorf("best_by_item = %v", body[0].BestByItem)
	}
}

func TestHandleActorDetail(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleActorDetail(rec, httptest.NewRequest("GET", "/api/v1/actor/crusoe", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.handleActorDetail(rec, httptest.NewRequest("GET", "/api/v1/actor/nobody", nil))
	if rec.Code != 404 {
		t.Errorf("unknown actor status = %d", rec.Code)
	}
}
