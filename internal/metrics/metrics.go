package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API 指标
var (
	// APIRequestsTotal API 请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcpfact_api_requests_total",
			Help: "API 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration API 请求延迟（秒）
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcpfact_api_request_duration_seconds",
			Help:    "API 请求延迟分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// APIResponseSize API 响应体大小（字节）
	APIResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcpfact_api_response_size_bytes",
			Help:    "API 响应体大小分布",
			Buckets: []float64{100, 1000, 10000, 100000},
		},
		[]string{"method", "path"},
	)
)

// 工具调用指标
var (
	// ToolCallsTotal 工具调用总数
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcpfact_tool_calls_total",
			Help: "工具调用总数",
		},
		[]string{"tool", "status"},
	)

	// ToolCallDuration 工具调用耗时（秒）
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcpfact_tool_call_duration_seconds",
			Help:    "工具调用耗时分布",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)

	// FactAPIFallbacksTotal 随机事实上游降级次数
	FactAPIFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcpfact_fact_api_fallbacks_total",
			Help: "随机事实 API 降级返回次数",
		},
		[]string{"reason"}, // unreachable, malformed
	)
)

// AI 模型调用指标
var (
	// ModelCallsTotal 模型调用总数
	ModelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcpfact_model_calls_total",
			Help: "AI 模型调用总数",
		},
		[]string{"model", "status"},
	)

	// ModelCallDuration 模型调用耗时（秒）
	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcpfact_model_call_duration_seconds",
			Help:    "AI 模型调用耗时分布",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// ModelCallTokens 模型调用 Token 数量
	ModelCallTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcpfact_model_call_tokens_total",
			Help: "AI 模型调用 Token 总数",
		},
		[]string{"model", "type"}, // type: prompt, completion
	)
)
