package builtin

import (
	"mcpfact/internal/config"
	"mcpfact/internal/tools"
)

// RegisterAll 注册所有内置工具
func RegisterAll(registry *tools.ToolRegistry, cfg *config.FactAPIConfig) error {
	url := cfg.URL
	if url == "" {
		url = config.DefaultFactAPIURL
	}

	randomFact := NewRandomFactTool(url, cfg.Timeout)
	if err := registry.Register(randomFact); err != nil {
		return err
	}

	return nil
}
