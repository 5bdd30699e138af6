package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/fredcamaral/docdeck/internal/domain/ports"
)

// smoothing factor of the duration moving averages
const alpha = 0.1

// Stats is a point-in-time view of server activity
type Stats struct {
	Uptime             string `json:"uptime"`
	Generations        int64  `json:"generations"`
	DemoGenerations    int64  `json:"demoGenerations"`
	GenerationFailures int64  `json:"generationFailures"`
	Renders            int64  `json:"renders"`
	RenderFailures     int64  `json:"renderFailures"`
	SocketSessions     int64  `json:"socketSessions"`
	ActiveSessions     int    `json:"activeSessions"`
	AvgGenerationMs    int64  `json:"avgGenerationMs"`
	AvgRenderMs        int64  `json:"avgRenderMs"`
	MemoryMB           int64  `json:"memoryMb"`
	Goroutines         int    `json:"goroutines"`
}

// Monitor counts generations and renders and tracks their average duration
type Monitor struct {
	mu    sync.Mutex
	clock ports.TimeProvider
	start time.Time

	generations        int64
	demoGenerations    int64
	generationFailures int64
	renders            int64
	renderFailures     int64
	socketSessions     int64
	avgGeneration      time.Duration
	avgRender          time.Duration
}

// NewMonitor creates a monitor whose uptime starts now
func NewMonitor(clock ports.TimeProvider) *Monitor {
	if clock == nil {
		clock = ports.NewRealTimeProvider()
	}
	return &Monitor{clock: clock, start: clock.Now()}
}

// RecordGeneration records one finished generation. Failed attempts do not
// move the average.
func (m *Monitor) RecordGeneration(duration time.Duration, demo bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.generationFailures++
		return
	}

	m.generations++
	if demo {
		m.demoGenerations++
	}
	m.avgGeneration = movingAverage(m.avgGeneration, duration)
}

// RecordRender records one finished render
func (m *Monitor) RecordRender(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.renderFailures++
		return
	}

	m.renders++
	m.avgRender = movingAverage(m.avgRender, duration)
}

// RecordSocketSession records an accepted generation socket
func (m *Monitor) RecordSocketSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.socketSessions++
}

// Snapshot returns the current counters with runtime memory figures
func (m *Monitor) Snapshot() Stats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Uptime:             m.clock.Now().Sub(m.start).Round(time.Second).String(),
		Generations:        m.generations,
		DemoGenerations:    m.demoGenerations,
		GenerationFailures: m.generationFailures,
		Renders:            m.renders,
		RenderFailures:     m.renderFailures,
		SocketSessions:     m.socketSessions,
		AvgGenerationMs:    m.avgGeneration.Milliseconds(),
		AvgRenderMs:        m.avgRender.Milliseconds(),
		MemoryMB:           safeUint64ToInt64(memStats.Alloc) / (1024 * 1024),
		Goroutines:         runtime.NumGoroutine(),
	}
}

// movingAverage is an exponential moving average seeded by the first sample
func movingAverage(current, sample time.Duration) time.Duration {
	if current == 0 {
		return sample
	}
	return time.Duration(float64(current)*(1-alpha) + float64(sample)*alpha)
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
