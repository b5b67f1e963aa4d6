package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	estimateCount int64
	errorCount    int64
	startTime     time.Time
	kindStats     map[string]*KindStats
	mu            sync.RWMutex
}

type KindStats struct {
	Calls        int64
	TotalTime    int64
	LastExecTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
		kindStats: make(map[string]*KindStats),
	}
}

func (m *Metrics) IncrErrorCount() {
	atomic.AddInt64(&m.errorCount, 1)
}

func (m *Metrics) GetErrorCount() int64 {
	return atomic.LoadInt64(&m.errorCount)
}

func (m *Metrics) GetEstimateCount() int64 {
	return atomic.LoadInt64(&m.estimateCount)
}

// AddEstimate records one successful estimate, comparison or report for kind.
func (m *Metrics) AddEstimate(kind string, duration time.Duration) {
	atomic.AddInt64(&m.estimateCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, exists := m.kindStats[kind]
	if !exists {
		stats = &KindStats{}
		m.kindStats[kind] = stats
	}

	stats.Calls++
	stats.TotalTime += duration.Nanoseconds()
	stats.LastExecTime = time.Now()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["uptime_in_seconds"] = int(time.Since(m.startTime).Seconds())
	stats["total_estimates"] = m.GetEstimateCount()
	stats["total_errors"] = m.GetErrorCount()

	kindStats := make(map[string]map[string]interface{})
	for kind, stat := range m.kindStats {
		kindStats[kind] = map[string]interface{}{
			"calls":          stat.Calls,
			"total_time_us":  stat.TotalTime / 1000,
			"avg_time_us":    stat.TotalTime / stat.Calls / 1000,
			"last_exec_time": stat.LastExecTime,
		}
	}
	stats["kindstats"] = kindStats

	return stats
}

// Info flattens the counters into key/value pairs for line-oriented output.
func (m *Metrics) Info() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info := map[string]string{
		"uptime_in_seconds": strconv.Itoa(int(time.Since(m.startTime).Seconds())),
		"total_estimates":   strconv.FormatInt(m.GetEstimateCount(), 10),
		"total_errors":      strconv.FormatInt(m.GetErrorCount(), 10),
	}
	for kind, stat := range m.kindStats {
		info["kind_"+kind+"_calls"] = strconv.FormatInt(stat.Calls, 10)
	}
	return info
}
