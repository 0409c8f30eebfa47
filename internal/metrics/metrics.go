// Package metrics counts store operations with Prometheus collectors.
//
// The registry is private to a Recorder and is never served over HTTP; the
// CLI dumps it in text exposition format at the end of a session.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/nibzard/todo-go/internal/todo"
)

const namespace = "todo"

// Recorder owns a registry and the collectors fed by store events.
type Recorder struct {
	registry           *prometheus.Registry
	operations         *prometheus.CounterVec
	tasks              prometheus.Gauge
	validationFailures prometheus.Counter
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Completed store operations by kind.",
			},
			[]string{"op"},
		),
		tasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks",
			Help:      "Number of tasks after the last transition.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Add attempts rejected because the text was empty.",
		}),
	}
	r.registry.MustRegister(r.operations, r.tasks, r.validationFailures)

	// Expose every op with a zero value from the start.
	for _, op := range []todo.Op{todo.OpAdd, todo.OpToggle, todo.OpDelete, todo.OpClear} {
		r.operations.WithLabelValues(string(op))
	}
	return r
}

// Observer returns a store observer feeding this recorder.
func (r *Recorder) Observer() todo.Observer {
	return func(ev todo.Event) {
		r.operations.WithLabelValues(string(ev.Op)).Inc()
		r.tasks.Set(float64(ev.Len))
	}
}

// RecordValidationFailure counts a rejected add.
func (r *Recorder) RecordValidationFailure() {
	r.validationFailures.Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes all metrics in Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
