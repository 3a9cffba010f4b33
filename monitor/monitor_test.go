package monitor

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wfunc/outbreak/game"
)

func TestMonitor_Observe(t *testing.T) {
	m := NewMonitor("outbreak_test")
	m.GameStarted()
	m.GameStarted()

	m.Observe(game.GameEvent{Type: game.EventOutbreak, Disease: game.Blue})
	m.Observe(game.GameEvent{Type: game.EventOutbreak, Disease: game.Blue})
	m.Observe(game.GameEvent{Type: game.EventOutbreak, Disease: game.Red})
	m.Observe(game.GameEvent{Type: game.EventEpidemic})
	m.Observe(game.GameEvent{Type: game.EventCured, Disease: game.Yellow})
	m.Observe(game.GameEvent{Type: game.EventTurnEnded})
	m.Observe(game.GameEvent{Type: game.EventCubePlaced})
	m.Observe(game.GameEvent{Type: game.EventGameOver, Outcome: game.OutcomeOutbreakLimit})

	metrics := m.Metrics()
	if got := testutil.ToFloat64(metrics.GamesStarted); got != 2 {
		t.Errorf("Expected 2 games started, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Outbreaks.WithLabelValues("blue")); got != 2 {
		t.Errorf("Expected 2 blue outbreaks, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Outbreaks.WithLabelValues("red")); got != 1 {
		t.Errorf("Expected 1 red outbreak, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Epidemics); got != 1 {
		t.Errorf("Expected 1 epidemic, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Cures.WithLabelValues("yellow")); got != 1 {
		t.Errorf("Expected 1 yellow cure, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Turns); got != 1 {
		t.Errorf("Expected 1 turn, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.GamesFinished.WithLabelValues("outbreak_limit")); got != 1 {
		t.Errorf("Expected 1 outbreak_limit finish, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.ActiveRooms); got != 1 {
		t.Errorf("Expected 1 active room, got %v", got)
	}
}

func TestMonitor_Handler(t *testing.T) {
	m := NewMonitor("outbreak_test")
	m.IncSpectators()
	m.ObserveTurnLatency(3 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{"outbreak_test_spectators 1", "outbreak_test_turn_latency_seconds_count 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}

func TestNewMonitor_Independent(t *testing.T) {
	// separate registries, registering twice must not panic
	NewMonitor("outbreak_test")
	NewMonitor("outbreak_test")
}
