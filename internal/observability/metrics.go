package observability

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type Metrics struct {
	apiRequests      *CounterVec
	apiLatency       *HistogramVec
	apiInflight      *Gauge
	questions        *CounterVec
	inference        *CounterVec
	inferenceLatency *HistogramVec
	persisted        *Counter
	persistFailures  *CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init installs the process-wide registry once. A disabled registry leaves
// Current nil and every recording method becomes a no-op.
func Init(enabled bool) *Metrics {
	if !enabled {
		return instance
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

func Current() *Metrics {
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("fc_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"fc_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		),
		apiInflight: NewGauge("fc_api_inflight_requests", "In-flight API requests."),
		questions:   NewCounterVec("fc_questions_generated_total", "Questions produced by source.", []string{"source"}),
		inference:   NewCounterVec("fc_inference_requests_total", "Question model calls by outcome.", []string{"outcome"}),
		inferenceLatency: NewHistogramVec(
			"fc_inference_request_duration_seconds",
			"Question model call latency in seconds by outcome.",
			[]string{"outcome"},
			[]float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		persisted:       NewCounter("fc_flashcards_persisted_total", "Flashcards committed to storage."),
		persistFailures: NewCounterVec("fc_flashcard_persist_failures_total", "Failed flashcard batch writes by failure class.", []string{"class"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.questions,
		m.inference,
		m.inferenceLatency,
		m.persisted,
		m.persistFailures,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncQuestion(source string) {
	if m == nil {
		return
	}
	m.questions.Inc(source)
}

func (m *Metrics) ObserveInference(outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.inference.Inc(outcome)
	m.inferenceLatency.Observe(dur.Seconds(), outcome)
}

func (m *Metrics) AddPersisted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.persisted.Add(float64(n))
}

func (m *Metrics) IncPersistFailure(class string) {
	if m == nil {
		return
	}
	m.persistFailures.Inc(class)
}
