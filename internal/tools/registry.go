package tools

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// ToolHandler 工具执行器接口
type ToolHandler interface {
	// Definition 返回工具定义
	Definition() *Tool

	// Execute 执行工具，返回文本结果
	Execute(ctx context.Context) (string, error)
}

// ToolRegistry 工具注册表
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]ToolHandler
	order []string // 注册顺序
}

// NewToolRegistry 创建工具注册表
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]ToolHandler),
	}
}

// Register 注册工具
func (r *ToolRegistry) Register(handler ToolHandler) error {
	def := handler.Definition()
	if def == nil || def.Name == "" {
		return fmt.Errorf("工具定义缺少名称")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("工具 %s 已注册", def.Name)
	}

	r.tools[def.Name] = handler
	r.order = append(r.order, def.Name)
	return nil
}

// Get 获取工具处理器（名称区分大小写）
func (r *ToolRegistry) Get(name string) (ToolHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, exists := r.tools[name]
	return handler, exists
}

// GetDefinition 获取工具定义
func (r *ToolRegistry) GetDefinition(name string) (*Tool, bool) {
	handler, exists := r.Get(name)
	if !exists {
		return nil, false
	}
	return handler.Definition(), true
}

// List 按注册顺序列出所有工具
func (r *ToolRegistry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].Definition())
	}
	return tools
}

// ToOpenAITools 转换为 OpenAI Tools 格式（无参数工具）
func (r *ToolRegistry) ToOpenAITools() []openai.Tool {
	defs := r.List()
	tools := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
					"required":   []string{},
				},
			},
		})
	}
	return tools
}

// Count 统计工具数量
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
