package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, container *AppContainer, handlers *Handlers) {
	// 系统
	router.GET("/health", HealthCheck())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// MCP 发现与调用
	mcp := router.Group("/.well-known/mcp")
	{
		mcp.GET("/tools", handlers.MCP.ListTools)
		mcp.POST("/tool/use", handlers.MCP.UseTool)
	}

	api := router.Group("/api")
	{
		api.GET("/tools/stats", handlers.Tools.ListStats)
		api.GET("/tools/stats/:name", handlers.Tools.GetStats)

		if handlers.Agent != nil {
			api.POST("/agent", handlers.Agent.Chat)
		}
	}
}
