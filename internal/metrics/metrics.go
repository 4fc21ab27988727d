package metrics

import (
	"fmt"
	"time"

	"github.com/limaJavier/courseplanner/internal/config"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOk      = "ok"      // Schedules without diagnostics
	OutcomePartial = "partial" // Schedules alongside diagnostics
	OutcomeFailed  = "failed"  // No schedule
)

// PlanEvent captures one planning request.
type PlanEvent struct {
	Result   model.Result
	Duration time.Duration
}

// Outcome classifies the result of the event.
func (ev PlanEvent) Outcome() string {
	switch {
	case len(ev.Result.Schedules) == 0:
		return OutcomeFailed
	case len(ev.Result.Errors) > 0:
		return OutcomePartial
	}
	return OutcomeOk
}

// Sink records planning events for observability purposes.
type Sink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error { return nil }

// NewSink builds the sink selected by the configuration on the given registerer.
func NewSink(cfg config.MetricsConfig, reg prometheus.Registerer) (Sink, error) {
	switch cfg.Sink {
	case "nop":
		return NopSink{}, nil
	case "prometheus", "":
		sink, err := NewPromSinkWithRegistry(reg)
		if err != nil {
			return nil, err
		}
		return sink, nil
	}
	return nil, fmt.Errorf("unknown metrics sink %q", cfg.Sink)
}

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	nodes    *prometheus.CounterVec
	capped   prometheus.Counter
	duration *prometheus.HistogramVec
	accepted prometheus.Histogram
}

// NewPromSinkWithRegistry registers planner metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_plans_total",
		Help: "Total number of planning requests by outcome",
	}, []string{"outcome"})
	nodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_search_nodes_total",
		Help: "Search tree nodes by kind",
	}, []string{"kind"})
	capped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_search_capped_total",
		Help: "Searches stopped at the enumeration ceiling",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_plan_duration_seconds",
		Help:    "Time spent planning one request",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	accepted := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_schedules_accepted",
		Help:    "Distinct schedules accepted per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if nodes, err = register(reg, nodes); err != nil {
		return nil, err
	}
	if capped, err = register(reg, capped); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if accepted, err = register(reg, accepted); err != nil {
		return nil, err
	}

	return &PromSink{plans: plans, nodes: nodes, capped: capped, duration: duration, accepted: accepted}, nil
}

// register reuses the already registered collector when one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

// RecordPlan updates every planner metric from the event.
func (s *PromSink) RecordPlan(ev PlanEvent) error {
	outcome := ev.Outcome()
	stats := ev.Result.Stats

	s.plans.WithLabelValues(outcome).Inc()
	s.duration.WithLabelValues(outcome).Observe(ev.Duration.Seconds())
	s.nodes.WithLabelValues("explored").Add(float64(stats.Explored))
	s.nodes.WithLabelValues("pruned").Add(float64(stats.Pruned))
	s.nodes.WithLabelValues("duplicate").Add(float64(stats.Duplicates))
	s.accepted.Observe(float64(stats.Accepted))
	if stats.Capped {
		s.capped.Inc()
	}
	return nil
}
