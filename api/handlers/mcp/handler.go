package mcp

import (
	"errors"
	"net/http"

	response "mcpfact/api/handlers/common"
	"mcpfact/internal/tools"

	"github.com/gin-gonic/gin"
)

// Handler MCP 发现与调用 Handler
type Handler struct {
	definitions tools.DefinitionProvider
	executor    tools.ExecutionProvider
}

// NewHandler 创建 Handler
func NewHandler(definitions tools.DefinitionProvider, executor tools.ExecutionProvider) *Handler {
	return &Handler{
		definitions: definitions,
		executor:    executor,
	}
}

// useToolRequest 使用指针区分缺失字段与空字符串
type useToolRequest struct {
	ToolName *string `json:"tool_name" binding:"required"`
}

// ListTools 列出可用工具
// @Summary 列出可用工具
// @Tags MCP Discovery
// @Produce json
// @Success 200 {array} tools.Tool
// @Router /.well-known/mcp/tools [get]
func (h *Handler) ListTools(c *gin.Context) {
	list := h.definitions.List()
	out := make([]tools.Tool, 0, len(list))
	for _, def := range list {
		out = append(out, *def)
	}
	c.JSON(http.StatusOK, out)
}

// UseTool 调用工具
// @Summary 调用工具
// @Tags MCP Tool Use
// @Accept json
// @Produce json
// @Param request body useToolRequest true "工具名称"
// @Success 200 {object} tools.ToolUseResponse
// @Failure 404 {object} response.DetailResponse
// @Failure 422 {object} response.DetailResponse
// @Router /.well-known/mcp/tool/use [post]
func (h *Handler) UseTool(c *gin.Context) {
	var req useToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.DetailResponse{Detail: err.Error()})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), &tools.ToolUseRequest{ToolName: *req.ToolName})
	if err != nil {
		var notFound *tools.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, response.DetailResponse{Detail: notFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.DetailResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
