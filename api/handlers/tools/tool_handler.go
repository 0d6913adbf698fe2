package tools

import (
	"net/http"

	response "mcpfact/api/handlers/common"
	"mcpfact/internal/tools"

	"github.com/gin-gonic/gin"
)

// ToolHandler 工具运行统计 Handler
type ToolHandler struct {
	metrics *tools.ToolMetrics
}

// NewToolHandler 创建 ToolHandler
func NewToolHandler(metrics *tools.ToolMetrics) *ToolHandler {
	return &ToolHandler{metrics: metrics}
}

// ListStats 查询所有工具的调用统计
// @Summary 工具调用统计
// @Tags Tools
// @Produce json
// @Success 200 {object} map[string]tools.ToolStatsSnapshot
// @Router /api/tools/stats [get]
func (h *ToolHandler) ListStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetAllStats())
}

// GetStats 查询单个工具的调用统计
// @Summary 单个工具调用统计
// @Tags Tools
// @Produce json
// @Param name path string true "工具名称"
// @Success 200 {object} tools.ToolStatsSnapshot
// @Failure 404 {object} response.DetailResponse
// @Router /api/tools/stats/{name} [get]
func (h *ToolHandler) GetStats(c *gin.Context) {
	name := c.Param("name")
	stats := h.metrics.GetStats(name)
	if stats == nil {
		c.JSON(http.StatusNotFound, response.DetailResponse{Detail: (&tools.NotFoundError{Name: name}).Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
