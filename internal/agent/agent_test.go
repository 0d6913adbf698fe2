package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcpfact/internal/logger"
	"mcpfact/internal/tools"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type factStub struct{ content string }

func (f *factStub) Definition() *tools.Tool {
	return &tools.Tool{Name: "get_random_fact", Description: "fact"}
}

func (f *factStub) Execute(ctx context.Context) (string, error) { return f.content, nil }

// scriptedChat 按顺序返回预设响应并记录请求
type scriptedChat struct {
	responses []openai.ChatCompletionResponse
	errs      []error
	requests  []openai.ChatCompletionRequest
}

func (s *scriptedChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := len(s.requests)
	s.requests = append(s.requests, req)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], err
	}
	return openai.ChatCompletionResponse{}, err
}

func reply(msg openai.ChatCompletionMessage) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: msg}},
		Usage:   openai.Usage{PromptTokens: 5, CompletionTokens: 2},
	}
}

func toolCallReply(name string) openai.ChatCompletionResponse {
	return reply(openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{{
			ID:       "call_1",
			Type:     openai.ToolTypeFunction,
			Function: openai.FunctionCall{Name: name, Arguments: "{}"},
		}},
	})
}

func setup(t *testing.T, content string) (*tools.ToolRegistry, *tools.ToolExecutor) {
	t.Helper()
	t.Cleanup(logger.Replace(zap.NewNop()))
	registry := tools.NewToolRegistry()
	require.NoError(t, registry.Register(&factStub{content: content}))
	return registry, tools.NewToolExecutor(registry, nil)
}

func TestAgentRunWithToolCall(t *testing.T) {
	registry, executor := setup(t, "Bananas are berries.")
	chat := &scriptedChat{responses: []openai.ChatCompletionResponse{
		toolCallReply("get_random_fact"),
		reply(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Fun fact: bananas are berries."}),
	}}

	answer, err := New(chat, "mistral", registry, executor).Run(context.Background(), "tell me a fact")
	require.NoError(t, err)
	assert.Equal(t, "Fun fact: bananas are berries.", answer)

	require.Len(t, chat.requests, 2)
	first := chat.requests[0]
	assert.Equal(t, "mistral", first.Model)
	require.Len(t, first.Tools, 1)
	assert.Equal(t, "get_random_fact", first.Tools[0].Function.Name)

	second := chat.requests[1]
	assert.Empty(t, second.Tools)
	require.Len(t, second.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleUser, second.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, second.Messages[1].Role)
	assert.Equal(t, openai.ChatMessageRoleTool, second.Messages[2].Role)
	assert.Equal(t, "Bananas are berries.", second.Messages[2].Content)
	assert.Equal(t, "call_1", second.Messages[2].ToolCallID)
}

func TestAgentRunWithoutToolCall(t *testing.T) {
	registry, executor := setup(t, "unused")
	chat := &scriptedChat{responses: []openai.ChatCompletionResponse{
		reply(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Hello!"}),
	}}

	answer, err := New(chat, "mistral", registry, executor).Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", answer)
	assert.Len(t, chat.requests, 1)
}

func TestAgentRunUnknownToolCall(t *testing.T) {
	registry, executor := setup(t, "unused")
	chat := &scriptedChat{responses: []openai.ChatCompletionResponse{toolCallReply("delete_everything")}}

	answer, err := New(chat, "mistral", registry, executor).Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "", answer)
	assert.Len(t, chat.requests, 1)
}

type failingInvoker struct{}

func (failingInvoker) Execute(ctx context.Context, req *tools.ToolUseRequest) (*tools.ToolUseResponse, error) {
	return nil, errors.New("connection refused")
}

func TestAgentRunToolServerDown(t *testing.T) {
	registry, _ := setup(t, "unused")
	chat := &scriptedChat{responses: []openai.ChatCompletionResponse{
		toolCallReply("get_random_fact"),
		reply(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Sorry."}),
	}}

	answer, err := New(chat, "mistral", registry, failingInvoker{}).Run(context.Background(), "fact?")
	require.NoError(t, err)
	assert.Equal(t, "Sorry.", answer)
	assert.Equal(t, ToolServerUnavailable, chat.requests[1].Messages[2].Content)
}

func TestAgentRunModelErrors(t *testing.T) {
	registry, executor := setup(t, "unused")

	chat := &scriptedChat{errs: []error{errors.New("ollama down")}}
	_, err := New(chat, "mistral", registry, executor).Run(context.Background(), "hi")
	assert.Error(t, err)

	empty := &scriptedChat{responses: []openai.ChatCompletionResponse{{}}}
	_, err = New(empty, "mistral", registry, executor).Run(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAgentWithOpenAICompatibleServer(t *testing.T) {
	registry, executor := setup(t, "Honey never spoils.")

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls++

		var msg openai.ChatCompletionMessage
		if calls == 1 {
			msg = toolCallReply("get_random_fact").Choices[0].Message
		} else {
			last := req.Messages[len(req.Messages)-1]
			msg = openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Did you know? " + last.Content}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:      "chatcmpl-1",
			Object:  "chat.completion",
			Model:   req.Model,
			Choices: []openai.ChatCompletionChoice{{Index: 0, Message: msg, FinishReason: openai.FinishReasonStop}},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL+"/v1", "ollama")
	answer, err := New(client, "mistral", registry, executor).Run(context.Background(), "fact please")
	require.NoError(t, err)
	assert.Equal(t, "Did you know? Honey never spoils.", answer)
	assert.Equal(t, 2, calls)
}
