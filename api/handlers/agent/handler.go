package agent

import (
	"context"
	"net/http"

	response "mcpfact/api/handlers/common"
	"mcpfact/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Runner 执行一次 Agent 对话
type Runner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Handler Agent 对话 Handler
type Handler struct {
	runner Runner
}

// NewHandler 创建 Handler
func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// ChatRequest 对话请求
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ChatResponse 对话响应
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat 询问模型，模型可按需调用随机事实工具
// @Summary Agent 对话
// @Tags Agent
// @Accept json
// @Produce json
// @Param request body ChatRequest true "用户输入"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/agent [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "请求参数错误: " + err.Error()})
		return
	}

	answer, err := h.runner.Run(c.Request.Context(), req.Prompt)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Agent 执行失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: answer})
}
