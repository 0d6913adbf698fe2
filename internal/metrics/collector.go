package metrics

import (
	"time"
)

// ToolRecorder 将工具调用写入 Prometheus，实现 tools.MetricsRecorder
type ToolRecorder struct{}

// NewToolRecorder 创建工具指标记录器
func NewToolRecorder() *ToolRecorder {
	return &ToolRecorder{}
}

// RecordToolCall 记录一次工具调用
func (r *ToolRecorder) RecordToolCall(tool string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failed"
	}
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordModelCall 记录模型调用指标
func RecordModelCall(model string, fn func() (int, int, error)) error {
	start := time.Now()

	promptTokens, completionTokens, err := fn()

	ModelCallDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	if promptTokens > 0 {
		ModelCallTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		ModelCallTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}

	status := "success"
	if err != nil {
		status = "failed"
	}
	ModelCallsTotal.WithLabelValues(model, status).Inc()

	return err
}
