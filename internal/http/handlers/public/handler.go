package public

import "github.com/velora-next/internal/provider"

// Handler 客户端/公开接口处理器入口
// 说明：该处理器仅用于公开目录、认证与客户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建客户端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
