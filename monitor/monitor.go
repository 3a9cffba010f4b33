// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/outbreak/game"
)

type Metrics struct {
	GamesStarted  prometheus.Counter
	GamesFinished *prometheus.CounterVec
	Outbreaks     *prometheus.CounterVec
	Epidemics     prometheus.Counter
	Cures         *prometheus.CounterVec
	Turns         prometheus.Counter
	ActiveRooms   prometheus.Gauge
	Spectators    prometheus.Gauge
	TurnLatency   prometheus.Histogram
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Number of games started",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of finished games by outcome",
		}, []string{"outcome"}),
		Outbreaks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbreaks_total",
			Help:      "Number of outbreaks by disease",
		}, []string{"disease"}),
		Epidemics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "epidemics_total",
			Help:      "Number of epidemic cards resolved",
		}),
		Cures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cures_total",
			Help:      "Number of cures discovered by disease",
		}, []string{"disease"}),
		Turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Number of completed turns",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms with a game in progress",
		}),
		Spectators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spectators",
			Help:      "Number of connected spectators",
		}),
		TurnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_latency_seconds",
			Help:      "Time spent resolving one turn",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}

	reg.MustRegister(
		m.GamesStarted,
		m.GamesFinished,
		m.Outbreaks,
		m.Epidemics,
		m.Cures,
		m.Turns,
		m.ActiveRooms,
		m.Spectators,
		m.TurnLatency,
	)

	return m
}

type Monitor struct {
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewMonitor 使用独立的 registry，便于测试
func NewMonitor(namespace string) *Monitor {
	reg := prometheus.NewRegistry()
	return &Monitor{
		metrics:  NewMetrics(namespace, reg),
		gatherer: reg,
	}
}

func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

// Handler 返回 /metrics 处理器
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// GameStarted 一局新游戏开始
func (m *Monitor) GameStarted() {
	m.metrics.GamesStarted.Inc()
	m.metrics.ActiveRooms.Inc()
}

// Observe 处理游戏事件总线上的事件
func (m *Monitor) Observe(e game.GameEvent) {
	switch e.Type {
	case game.EventOutbreak:
		m.metrics.Outbreaks.WithLabelValues(e.Disease.String()).Inc()
	case game.EventEpidemic:
		m.metrics.Epidemics.Inc()
	case game.EventCured:
		m.metrics.Cures.WithLabelValues(e.Disease.String()).Inc()
	case game.EventTurnEnded:
		m.metrics.Turns.Inc()
	case game.EventGameOver:
		m.metrics.GamesFinished.WithLabelValues(e.Outcome.String()).Inc()
		m.metrics.ActiveRooms.Dec()
	}
}

func (m *Monitor) IncSpectators() {
	m.metrics.Spectators.Inc()
}

func (m *Monitor) DecSpectators() {
	m.metrics.Spectators.Dec()
}

func (m *Monitor) ObserveTurnLatency(duration time.Duration) {
	m.metrics.TurnLatency.Observe(duration.Seconds())
}
