package builtin

import (
	"context"
	"time"

	"mcpfact/internal/logger"
	"mcpfact/internal/metrics"
	"mcpfact/internal/tools"
	"mcpfact/pkg/httputil"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	// RandomFactToolName 随机事实工具名称
	RandomFactToolName = "get_random_fact"
	// RandomFactToolDescription 随机事实工具描述
	RandomFactToolDescription = "Returns a random interesting fact in English from a public API. " +
		"This tool does not accept any parameters."

	// FallbackExtractFailed 上游响应中缺少 text 字段
	FallbackExtractFailed = "Could not extract fact from API response."
	// FallbackUnreachable 上游不可达或返回非 2xx
	FallbackUnreachable = "Could not connect to the random fact service."
)

// RandomFactTool 从公共 API 获取随机事实
// 上游失败不会向调用方返回错误，统一降级为固定文本
type RandomFactTool struct {
	url     string
	timeout time.Duration
}

// NewRandomFactTool 创建随机事实工具，timeout<=0 时使用 httputil 默认超时
func NewRandomFactTool(url string, timeout time.Duration) *RandomFactTool {
	return &RandomFactTool{url: url, timeout: timeout}
}

// Definition 工具定义
func (t *RandomFactTool) Definition() *tools.Tool {
	return &tools.Tool{
		Name:        RandomFactToolName,
		Description: RandomFactToolDescription,
	}
}

// Execute 获取随机事实
func (t *RandomFactTool) Execute(ctx context.Context) (string, error) {
	return t.fetchRandomFact(ctx), nil
}

func (t *RandomFactTool) fetchRandomFact(ctx context.Context) string {
	// 每次调用使用独立客户端，结束后释放连接
	client := httputil.NewClient(httputil.WithTimeout(t.timeout))
	defer client.Close()

	body, err := client.GetBytes(ctx, t.url)
	if err != nil {
		logger.WithContext(ctx).Error("请求随机事实 API 失败",
			zap.String("url", t.url),
			zap.Error(err),
		)
		metrics.FactAPIFallbacksTotal.WithLabelValues("unreachable").Inc()
		return FallbackUnreachable
	}

	text := extractText(body)
	if text == "" {
		logger.WithContext(ctx).Warn("随机事实 API 响应缺少 text 字段",
			zap.String("url", t.url),
			zap.Int("body_size", len(body)),
		)
		metrics.FactAPIFallbacksTotal.WithLabelValues("malformed").Inc()
		return FallbackExtractFailed
	}

	return text
}

// extractText 从 JSON 对象中取出非空字符串 text 字段
func extractText(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return ""
	}
	field := root.Get("text")
	if field.Type != gjson.String {
		return ""
	}
	return field.String()
}
