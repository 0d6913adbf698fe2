package agent

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mcpfact/internal/tools"
	"mcpfact/pkg/httputil"
)

// ToolServerClient 通过 HTTP 调用远程网关的 tool/use 端点
type ToolServerClient struct {
	url     string
	timeout time.Duration
}

// NewToolServerClient 创建远程工具客户端，url 为完整的 tool/use 地址
func NewToolServerClient(url string, timeout time.Duration) *ToolServerClient {
	return &ToolServerClient{url: url, timeout: timeout}
}

// Execute 调用远程工具
func (c *ToolServerClient) Execute(ctx context.Context, req *tools.ToolUseRequest) (*tools.ToolUseResponse, error) {
	client := httputil.NewClient(httputil.WithTimeout(c.timeout))
	defer client.Close()

	var resp tools.ToolUseResponse
	if err := client.PostJSON(ctx, c.url, req, &resp); err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, &tools.NotFoundError{Name: req.ToolName}
		}
		return nil, err
	}
	return &resp, nil
}
