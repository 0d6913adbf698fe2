package common

// DetailResponse 与 MCP 客户端约定的错误结构：{"detail": "..."}
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ErrorResponse 统一错误返回结构。
type ErrorResponse struct {
	Error string `json:"error"`
}
