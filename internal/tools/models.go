package tools

// Tool 工具定义（启动时注册，进程生命周期内只读）
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolUseRequest 工具调用请求
type ToolUseRequest struct {
	ToolName string `json:"tool_name"`
}

// ToolUseResponse 工具调用结果
type ToolUseResponse struct {
	Content string `json:"content"`
}
