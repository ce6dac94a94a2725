// Package metrics collects per-run counters for the generation pipeline.
// Every Recorder owns a private registry, so tests and commands never
// share state. All methods are safe on a nil *Recorder.
package metrics

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "slidegen"

// Recorder holds all Prometheus metrics for one process.
type Recorder struct {
	registry *prometheus.Registry

	// LLM metrics
	LLMRequests *prometheus.CounterVec
	LLMDuration *prometheus.HistogramVec

	// Pipeline metrics
	Fallbacks *prometheus.CounterVec

	// Search metrics
	SearchRequests *prometheus.CounterVec
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter

	// Render metrics
	SlidesRendered *prometheus.CounterVec

	// Store metrics
	StoreOperations *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	llmRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM completion requests",
		},
		[]string{"provider", "outcome"},
	)

	llmDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	fallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Outline steps that fell back to placeholder text",
		},
		[]string{"step"},
	)

	searchRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of web search lookups",
		},
		[]string{"outcome"},
	)

	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_hits_total",
			Help:      "Lookups served from the search cache",
		},
	)

	cacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_misses_total",
			Help:      "Lookups that missed the search cache",
		},
	)

	slidesRendered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slides_rendered_total",
			Help:      "Rendered slides by layout",
		},
		[]string{"layout"},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Presentation store operations",
		},
		[]string{"operation", "status"},
	)

	registry.MustRegister(
		llmRequests,
		llmDuration,
		fallbacks,
		searchRequests,
		cacheHits,
		cacheMisses,
		slidesRendered,
		storeOperations,
	)

	return &Recorder{
		registry:        registry,
		LLMRequests:     llmRequests,
		LLMDuration:     llmDuration,
		Fallbacks:       fallbacks,
		SearchRequests:  searchRequests,
		CacheHits:       cacheHits,
		CacheMisses:     cacheMisses,
		SlidesRendered:  slidesRendered,
		StoreOperations: storeOperations,
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveLLM records one completion request.
func (r *Recorder) ObserveLLM(provider string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.LLMRequests.WithLabelValues(provider, outcome(err)).Inc()
	r.LLMDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Fallback records a pipeline step that used its placeholder.
func (r *Recorder) Fallback(step string) {
	if r == nil {
		return
	}
	r.Fallbacks.WithLabelValues(step).Inc()
}

// Search records one lookup.
func (r *Recorder) Search(err error) {
	if r == nil {
		return
	}
	r.SearchRequests.WithLabelValues(outcome(err)).Inc()
}

// Cache records a cache hit or miss.
func (r *Recorder) Cache(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.CacheHits.Inc()
	} else {
		r.CacheMisses.Inc()
	}
}

// SlideRendered records a rendered slide.
func (r *Recorder) SlideRendered(layout string) {
	if r == nil {
		return
	}
	r.SlidesRendered.WithLabelValues(layout).Inc()
}

// StoreOp records a store operation.
func (r *Recorder) StoreOp(operation string, err error) {
	if r == nil {
		return
	}
	r.StoreOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers all non-zero counters and histogram counts, sorted by
// name and labels.
func (r *Recorder) Snapshot() ([]Sample, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			name := mf.GetName()
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				v = float64(m.GetHistogram().GetSampleCount())
				name += "_count"
			default:
				continue
			}
			if v == 0 {
				continue
			}
			out = append(out, Sample{Name: name, Labels: formatLabels(m.GetLabel()), Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
