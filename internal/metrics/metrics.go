package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shopseed"

const (
	StageReference    = "reference"
	StageCatalog      = "catalog"
	StageTransactions = "transactions"
	StageExport       = "export"
	StageLoad         = "load"
)

// Recorder collects per-run counters on a private registry. A nil Recorder
// accepts every call and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	rowsGenerated *prometheus.CounterVec
	rowsLoaded    *prometheus.CounterVec
	stageDuration *prometheus.GaugeVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rowsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_generated_total",
			Help:      "Rows generated per table.",
		}, []string{"table"}),
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows inserted per table by a committed load.",
		}, []string{"table"}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in the last run.",
		}, []string{"stage"}),
	}
	r.registry.MustRegister(r.rowsGenerated, r.rowsLoaded, r.stageDuration)
	return r
}

func (r *Recorder) RowsGenerated(table string, n int) {
	if r == nil {
		return
	}
	r.rowsGenerated.WithLabelValues(table).Add(float64(n))
}

func (r *Recorder) RowsLoaded(table string, n int) {
	if r == nil {
		return
	}
	r.rowsLoaded.WithLabelValues(table).Add(float64(n))
}

func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// Time runs fn and records its duration under stage, whether or not it fails.
func (r *Recorder) Time(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.ObserveStage(stage, time.Since(start))
	return err
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
