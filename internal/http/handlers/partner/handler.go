package partner

import "github.com/velora-next/internal/provider"

// Handler 配送端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建配送端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
