package agent

import (
	"context"
	"errors"
	"fmt"

	"mcpfact/internal/logger"
	"mcpfact/internal/metrics"
	"mcpfact/internal/tools"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ToolServerUnavailable 工具服务调用失败时回填给模型的文本
const ToolServerUnavailable = "Failed to get fact: Could not connect to the tool server."

// ErrEmptyCompletion 模型未返回任何候选
var ErrEmptyCompletion = errors.New("模型返回空响应")

// ChatClient OpenAI 兼容对话接口，*openai.Client 满足该接口
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Toolset 模型可见的工具集合
type Toolset interface {
	tools.DefinitionProvider
	ToOpenAITools() []openai.Tool
}

// Agent 单轮工具调用 Agent：询问模型，按需调用工具后再请求最终回答
type Agent struct {
	client  ChatClient
	model   string
	toolset Toolset
	invoker tools.ExecutionProvider
	tracer  trace.Tracer
}

// New 创建 Agent
func New(client ChatClient, model string, toolset Toolset, invoker tools.ExecutionProvider) *Agent {
	return &Agent{
		client:  client,
		model:   model,
		toolset: toolset,
		invoker: invoker,
		tracer:  otel.Tracer("mcpfact/internal/agent"),
	}
}

// NewOpenAIClient 按配置创建 OpenAI 兼容客户端（Ollama 需带 /v1 前缀）
func NewOpenAIClient(baseURL, apiKey string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// Run 处理一次用户输入，返回模型的最终回答
func (a *Agent) Run(ctx context.Context, prompt string) (string, error) {
	ctx, span := a.tracer.Start(ctx, "Agent.Run")
	defer span.End()
	span.SetAttributes(attribute.String("model", a.model))

	log := logger.WithContext(ctx)
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	log.Info("请求模型决策", zap.String("model", a.model))
	first, err := a.complete(ctx, messages, a.toolset.ToOpenAITools())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		return "", err
	}

	if len(first.ToolCalls) == 0 {
		log.Info("模型未调用工具，直接回答")
		return first.Content, nil
	}

	call := first.ToolCalls[0]
	if _, ok := a.toolset.GetDefinition(call.Function.Name); !ok {
		log.Warn("模型请求了未知工具", zap.String("tool", call.Function.Name))
		return first.Content, nil
	}

	span.SetAttributes(attribute.String("tool_name", call.Function.Name))
	log.Info("模型决定调用工具", zap.String("tool", call.Function.Name))

	result := a.invokeTool(ctx, call.Function.Name)
	messages = append(messages, first, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    result,
		ToolCallID: call.ID,
	})

	final, err := a.complete(ctx, messages, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		return "", err
	}
	return final.Content, nil
}

func (a *Agent) invokeTool(ctx context.Context, name string) string {
	resp, err := a.invoker.Execute(ctx, &tools.ToolUseRequest{ToolName: name})
	if err != nil {
		logger.WithContext(ctx).Error("调用工具服务失败", zap.String("tool", name), zap.Error(err))
		return ToolServerUnavailable
	}
	return resp.Content
}

func (a *Agent) complete(ctx context.Context, messages []openai.ChatCompletionMessage, toolDefs []openai.Tool) (openai.ChatCompletionMessage, error) {
	req := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    toolDefs,
	}

	var resp openai.ChatCompletionResponse
	err := metrics.RecordModelCall(a.model, func() (int, int, error) {
		var callErr error
		resp, callErr = a.client.CreateChatCompletion(ctx, req)
		return resp.Usage.PromptTokens, resp.Usage.CompletionTokens, callErr
	})
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("调用模型失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, ErrEmptyCompletion
	}
	return resp.Choices[0].Message, nil
}
