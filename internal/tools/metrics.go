package tools

import (
	"sync"
	"sync/atomic"
	"time"
)

// ToolMetrics 工具调用统计
type ToolMetrics struct {
	tools    map[string]*ToolStats
	mu       sync.RWMutex
	recorder MetricsRecorder
}

// ToolStats 单个工具的统计数据
type ToolStats struct {
	Name          string
	TotalCalls    atomic.Int64
	SuccessCalls  atomic.Int64
	FailedCalls   atomic.Int64
	TotalDuration atomic.Int64 // 纳秒
	MaxDuration   atomic.Int64
	LastCalled    atomic.Int64 // Unix 时间戳
	LastError     atomic.Value // string
}

// MetricsRecorder 指标记录接口（对接 Prometheus）
type MetricsRecorder interface {
	RecordToolCall(tool string, success bool, duration time.Duration)
}

// NewToolMetrics 创建工具指标收集器
func NewToolMetrics(recorder MetricsRecorder) *ToolMetrics {
	return &ToolMetrics{
		tools:    make(map[string]*ToolStats),
		recorder: recorder,
	}
}

func (m *ToolMetrics) getOrCreateStats(name string) *ToolStats {
	m.mu.RLock()
	stats, ok := m.tools[name]
	m.mu.RUnlock()
	if ok {
		return stats
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 双重检查
	if stats, ok = m.tools[name]; ok {
		return stats
	}
	stats = &ToolStats{Name: name}
	m.tools[name] = stats
	return stats
}

// RecordCall 记录工具调用
func (m *ToolMetrics) RecordCall(name string, success bool, duration time.Duration, err error) {
	stats := m.getOrCreateStats(name)

	stats.TotalCalls.Add(1)
	if success {
		stats.SuccessCalls.Add(1)
	} else {
		stats.FailedCalls.Add(1)
		if err != nil {
			stats.LastError.Store(err.Error())
		}
	}

	durationNs := duration.Nanoseconds()
	stats.TotalDuration.Add(durationNs)
	stats.LastCalled.Store(time.Now().Unix())

	for {
		old := stats.MaxDuration.Load()
		if durationNs <= old || stats.MaxDuration.CompareAndSwap(old, durationNs) {
			break
		}
	}

	if m.recorder != nil {
		m.recorder.RecordToolCall(name, success, duration)
	}
}

// ToolStatsSnapshot 工具统计快照
type ToolStatsSnapshot struct {
	Name         string        `json:"name"`
	TotalCalls   int64         `json:"total_calls"`
	SuccessCalls int64         `json:"success_calls"`
	FailedCalls  int64         `json:"failed_calls"`
	SuccessRate  float64       `json:"success_rate"`
	AvgDuration  time.Duration `json:"avg_duration"`
	MaxDuration  time.Duration `json:"max_duration"`
	LastCalled   *time.Time    `json:"last_called,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
}

// GetStats 获取工具统计
func (m *ToolMetrics) GetStats(name string) *ToolStatsSnapshot {
	m.mu.RLock()
	stats, ok := m.tools[name]
	m.mu.RUnlock()

	if !ok {
		return nil
	}
	return snapshotStats(stats)
}

// GetAllStats 获取所有工具统计
func (m *ToolMetrics) GetAllStats() map[string]*ToolStatsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*ToolStatsSnapshot, len(m.tools))
	for name, stats := range m.tools {
		result[name] = snapshotStats(stats)
	}
	return result
}

func snapshotStats(stats *ToolStats) *ToolStatsSnapshot {
	total := stats.TotalCalls.Load()
	success := stats.SuccessCalls.Load()

	snapshot := &ToolStatsSnapshot{
		Name:         stats.Name,
		TotalCalls:   total,
		SuccessCalls: success,
		FailedCalls:  stats.FailedCalls.Load(),
		MaxDuration:  time.Duration(stats.MaxDuration.Load()),
	}

	if total > 0 {
		snapshot.SuccessRate = float64(success) / float64(total)
		snapshot.AvgDuration = time.Duration(stats.TotalDuration.Load() / total)
	}

	if lastCalled := stats.LastCalled.Load(); lastCalled > 0 {
		t := time.Unix(lastCalled, 0)
		snapshot.LastCalled = &t
	}

	if lastErr, ok := stats.LastError.Load().(string); ok {
		snapshot.LastError = lastErr
	}

	return snapshot
}
