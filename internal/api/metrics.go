package api

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"seqapi/internal/version"
)

// MetricsCollector collects request and generation metrics and exposes them
// in the Prometheus text format.
type MetricsCollector struct {
	requestsTotal    *Counter
	validationErrors *Counter
	termsTotal       *Counter
	requestDuration  *Histogram
	goroutines       *Gauge

	startTime time.Time
}

// Counter is a monotonically increasing counter
type Counter struct {
	name   string
	help   string
	labels []string
	values sync.Map // map[string]*uint64
}

// Histogram tracks distributions of values
type Histogram struct {
	name    string
	help    string
	labels  []string
	buckets []float64
	values  sync.Map // map[string]*histogramValue
}

type histogramValue struct {
	mu      sync.Mutex
	sum     float64
	count   uint64
	buckets []uint64
}

// Gauge is a metric that can go up and down
type Gauge struct {
	name   string
	help   string
	labels []string
	values sync.Map // map[string]*float64
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startTime: time.Now(),
		requestsTotal: &Counter{
			name:   "seqapi_http_requests_total",
			help:   "Total number of HTTP requests",
			labels: []string{"method", "route", "status"},
		},
		validationErrors: &Counter{
			name:   "seqapi_validation_errors_total",
			help:   "Total number of rejected sequence requests",
			labels: []string{"sequence", "code"},
		},
		termsTotal: &Counter{
			name:   "seqapi_terms_generated_total",
			help:   "Total number of sequence terms generated",
			labels: []string{"sequence"},
		},
		requestDuration: &Histogram{
			name:    "seqapi_http_request_duration_seconds",
			help:    "HTTP request latency",
			labels:  []string{"route"},
			buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		goroutines: &Gauge{
			name: "seqapi_goroutines",
			help: "Number of goroutines",
		},
	}
}

// RecordRequest records a completed HTTP request
func (m *MetricsCollector) RecordRequest(method, route, status string, duration time.Duration) {
	m.requestsTotal.Inc(method, route, status)
	m.requestDuration.Observe(duration.Seconds(), route)
}

// RecordSequence records a successful generation of count terms
func (m *MetricsCollector) RecordSequence(name string, count int) {
	m.termsTotal.Add(uint64(count), name)
}

// RecordValidationError records a rejected request
func (m *MetricsCollector) RecordValidationError(name, code string) {
	m.validationErrors.Inc(name, code)
}

// WritePrometheus writes metrics in Prometheus text format
func (m *MetricsCollector) WritePrometheus(w io.Writer) {
	m.goroutines.Set(float64(runtime.NumGoroutine()))

	fmt.Fprintf(w, "# HELP seqapi_info seqapi build information\n")
	fmt.Fprintf(w, "# TYPE seqapi_info gauge\n")
	fmt.Fprintf(w, "seqapi_info{version=\"%s\"} 1\n\n", version.Version)

	fmt.Fprintf(w, "# HELP seqapi_uptime_seconds Time since seqapi started\n")
	fmt.Fprintf(w, "# TYPE seqapi_uptime_seconds counter\n")
	fmt.Fprintf(w, "seqapi_uptime_seconds %.3f\n\n", time.Since(m.startTime).Seconds())

	m.requestsTotal.write(w)
	m.validationErrors.write(w)
	m.termsTotal.write(w)
	m.requestDuration.write(w)
	m.goroutines.write(w)
}

// handleMetrics handles GET /metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	s.metrics.WritePrometheus(w)
}

// Inc increments the counter for the given label values
func (c *Counter) Inc(labelValues ...string) {
	c.Add(1, labelValues...)
}

// Add adds delta to the counter for the given label values
func (c *Counter) Add(delta uint64, labelValues ...string) {
	key := labelsToKey(c.labels, labelValues)
	val, _ := c.values.LoadOrStore(key, new(uint64))
	atomic.AddUint64(val.(*uint64), delta)
}

// Value returns the current count for the given label values
func (c *Counter) Value(labelValues ...string) uint64 {
	val, ok := c.values.Load(labelsToKey(c.labels, labelValues))
	if !ok {
		return 0
	}
	return atomic.LoadUint64(val.(*uint64))
}

func (c *Counter) write(w io.Writer) {
	fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
	fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
	for _, key := range sortedKeys(&c.values) {
		val, _ := c.values.Load(key)
		fmt.Fprintf(w, "%s%s %d\n", c.name, key, atomic.LoadUint64(val.(*uint64)))
	}
	fmt.Fprintln(w)
}

// Observe records value in the histogram for the given label values
func (h *Histogram) Observe(value float64, labelValues ...string) {
	key := labelsToKey(h.labels, labelValues)
	val, _ := h.values.LoadOrStore(key, &histogramValue{
		buckets: make([]uint64, len(h.buckets)+1), // +1 for +Inf
	})

	hv := val.(*histogramValue)
	hv.mu.Lock()
	defer hv.mu.Unlock()

	hv.sum += value
	hv.count++

	bucketIdx := len(h.buckets) // +Inf
	for i, bound := range h.buckets {
		if value <= bound {
			bucketIdx = i
			break
		}
	}
	hv.buckets[bucketIdx]++
}

func (h *Histogram) write(w io.Writer) {
	fmt.Fprintf(w, "# HELP %s %s\n", h.name, h.help)
	fmt.Fprintf(w, "# TYPE %s histogram\n", h.name)

	for _, key := range sortedKeys(&h.values) {
		val, _ := h.values.Load(key)
		hv := val.(*histogramValue)

		hv.mu.Lock()
		cumulative := uint64(0)
		for i, bound := range h.buckets {
			cumulative += hv.buckets[i]
			fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLabel(key, "le", fmt.Sprintf("%g", bound)), cumulative)
		}
		cumulative += hv.buckets[len(h.buckets)]
		fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLabel(key, "le", "+Inf"), cumulative)
		fmt.Fprintf(w, "%s_sum%s %.6f\n", h.name, key, hv.sum)
		fmt.Fprintf(w, "%s_count%s %d\n", h.name, key, hv.count)
		hv.mu.Unlock()
	}
	fmt.Fprintln(w)
}

// Set sets the gauge for the given label values
func (g *Gauge) Set(value float64, labelValues ...string) {
	ptr := new(float64)
	*ptr = value
	g.values.Store(labelsToKey(g.labels, labelValues), ptr)
}

func (g *Gauge) write(w io.Writer) {
	fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help)
	fmt.Fprintf(w, "# TYPE %s gauge\n", g.name)
	for _, key := range sortedKeys(&g.values) {
		val, _ := g.values.Load(key)
		fmt.Fprintf(w, "%s%s %g\n", g.name, key, *val.(*float64))
	}
	fmt.Fprintln(w)
}

func labelsToKey(labels, values []string) string {
	if len(labels) == 0 || len(values) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(labels))
	for i, label := range labels {
		if i < len(values) {
			pairs = append(pairs, fmt.Sprintf("%s=%q", label, values[i]))
		}
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// withLabel appends name=value to a rendered label set
func withLabel(key, name, value string) string {
	pair := fmt.Sprintf("%s=%q", name, value)
	if key == "" {
		return "{" + pair + "}"
	}
	return key[:len(key)-1] + "," + pair + "}"
}

func sortedKeys(m *sync.Map) []string {
	var keys []string
	m.Range(func(key, _ interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}
