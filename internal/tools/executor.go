package tools

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ToolExecutor 工具执行引擎
type ToolExecutor struct {
	registry *ToolRegistry
	metrics  *ToolMetrics
	tracer   trace.Tracer
}

// NewToolExecutor 创建工具执行引擎，metrics 可为 nil
func NewToolExecutor(registry *ToolRegistry, metrics *ToolMetrics) *ToolExecutor {
	if metrics == nil {
		metrics = NewToolMetrics(nil)
	}
	return &ToolExecutor{
		registry: registry,
		metrics:  metrics,
		tracer:   otel.Tracer("mcpfact/internal/tools"),
	}
}

// Metrics 返回执行统计
func (e *ToolExecutor) Metrics() *ToolMetrics {
	return e.metrics
}

// Execute 执行工具
func (e *ToolExecutor) Execute(ctx context.Context, req *ToolUseRequest) (*ToolUseResponse, error) {
	ctx, span := e.tracer.Start(ctx, "ToolExecutor.Execute")
	defer span.End()
	span.SetAttributes(attribute.String("tool_name", req.ToolName))

	handler, exists := e.registry.Get(req.ToolName)
	if !exists {
		err := &NotFoundError{Name: req.ToolName}
		span.SetStatus(codes.Error, "tool not found")
		return nil, err
	}

	start := time.Now()
	content, err := handler.Execute(ctx)
	e.metrics.RecordCall(req.ToolName, err == nil, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool execution failed")
		return nil, fmt.Errorf("工具 %s 执行失败: %w", req.ToolName, err)
	}

	return &ToolUseResponse{Content: content}, nil
}
