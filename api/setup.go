package api

import (
	"fmt"

	agentHandlers "mcpfact/api/handlers/agent"
	mcpHandlers "mcpfact/api/handlers/mcp"
	toolHandlers "mcpfact/api/handlers/tools"
	"mcpfact/internal/agent"
	"mcpfact/internal/config"
	"mcpfact/internal/logger"
	"mcpfact/internal/metrics"
	middlewarepkg "mcpfact/internal/middleware"
	"mcpfact/internal/tools"
	"mcpfact/internal/tools/builtin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppContainer 应用依赖容器
type AppContainer struct {
	Config   *config.Config
	Registry *tools.ToolRegistry
	Executor *tools.ToolExecutor
	Agent    *agent.Agent // agent.enabled=false 时为 nil
}

// Handlers 所有 HTTP Handler
type Handlers struct {
	MCP   *mcpHandlers.Handler
	Tools *toolHandlers.ToolHandler
	Agent *agentHandlers.Handler // 可为 nil
}

// NewContainer 构建依赖：注册内置工具，创建执行器与 Agent
func NewContainer(cfg *config.Config) (*AppContainer, error) {
	registry := tools.NewToolRegistry()
	if err := builtin.RegisterAll(registry, &cfg.FactAPI); err != nil {
		return nil, fmt.Errorf("注册内置工具失败: %w", err)
	}

	executor := tools.NewToolExecutor(registry, tools.NewToolMetrics(metrics.NewToolRecorder()))

	container := &AppContainer{
		Config:   cfg,
		Registry: registry,
		Executor: executor,
	}

	if cfg.Agent.Enabled {
		var invoker tools.ExecutionProvider = executor
		if cfg.Agent.ToolServerURL != "" {
			invoker = agent.NewToolServerClient(cfg.Agent.ToolServerURL, 0)
		}
		client := agent.NewOpenAIClient(cfg.Agent.BaseURL, cfg.Agent.APIKey)
		container.Agent = agent.New(client, cfg.Agent.Model, registry, invoker)
	}

	return container, nil
}

// NewHandlers 创建 Handler 集合
func NewHandlers(c *AppContainer) *Handlers {
	h := &Handlers{
		MCP:   mcpHandlers.NewHandler(c.Registry, c.Executor),
		Tools: toolHandlers.NewToolHandler(c.Executor.Metrics()),
	}
	if c.Agent != nil {
		h.Agent = agentHandlers.NewHandler(c.Agent)
	}
	return h
}

// SetupRouter 设置并返回 Gin 路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middlewarepkg.RequestIDMiddleware(),
		RequestLogger(),
		metrics.PrometheusMiddleware(),
		CORS(),
	)

	RegisterRoutes(router, container, NewHandlers(container))

	logger.Info("路由初始化完成",
		zap.Int("tools", container.Registry.Count()),
		zap.Bool("agent_enabled", container.Agent != nil),
		zap.String("fact_api", cfg.FactAPI.URL),
	)

	return router, nil
}
