package observability

import (
	"sort"
	"sync"
	"time"
)

type requestKey struct {
	Route  string
	Method string
	Status int
}

type errorKey struct {
	Route  string
	Method string
	Code   string
}

type requestTotals struct {
	count   int64
	latency time.Duration
}

// Metrics provides basic in-memory counters keyed by route pattern.
type Metrics struct {
	mu        sync.Mutex
	startedAt time.Time
	requests  map[requestKey]*requestTotals
	errors    map[errorKey]int64
}

// RequestStat is one row of the request counters.
type RequestStat struct {
	Route        string  `json:"route"`
	Method       string  `json:"method"`
	Status       int     `json:"status"`
	Count        int64   `json:"count"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}

// ErrorStat is one row of the error counters.
type ErrorStat struct {
	Route  string `json:"route"`
	Method string `json:"method"`
	Code   string `json:"code"`
	Count  int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	StartedAt     time.Time     `json:"startedAt"`
	TotalRequests int64         `json:"totalRequests"`
	TotalErrors   int64         `json:"totalErrors"`
	Requests      []RequestStat `json:"requests"`
	Errors        []ErrorStat   `json:"errors"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt: time.Now().UTC(),
		requests:  make(map[requestKey]*requestTotals),
		errors:    make(map[errorKey]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := requestKey{Route: route, Method: method, Status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	totals, ok := m.requests[key]
	if !ok {
		totals = &requestTotals{}
		m.requests[key] = totals
	}
	totals.count++
	totals.latency += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[errorKey{Route: route, Method: method, Code: code}]++
}

// Snapshot copies the current counters, sorted by route then method.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{Requests: []RequestStat{}, Errors: []ErrorStat{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		StartedAt: m.startedAt,
		Requests:  make([]RequestStat, 0, len(m.requests)),
		Errors:    make([]ErrorStat, 0, len(m.errors)),
	}
	for key, totals := range m.requests {
		avg := float64(totals.latency) / float64(totals.count) / float64(time.Millisecond)
		snap.Requests = append(snap.Requests, RequestStat{
			Route:        key.Route,
			Method:       key.Method,
			Status:       key.Status,
			Count:        totals.count,
			AvgLatencyMs: avg,
		})
		snap.TotalRequests += totals.count
	}
	for key, count := range m.errors {
		snap.Errors = append(snap.Errors, ErrorStat{Route: key.Route, Method: key.Method, Code: key.Code, Count: count})
		snap.TotalErrors += count
	}

	sort.Slice(snap.Requests, func(i, j int) bool {
		a, b := snap.Requests[i], snap.Requests[j]
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Status < b.Status
	})
	sort.Slice(snap.Errors, func(i, j int) bool {
		a, b := snap.Errors[i], snap.Errors[j]
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Code < b.Code
	})
	return snap
}
