package admin

import (
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Role:     c.Query("role"),
		Keyword:  c.Query("keyword"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	users, total, err := h.UserRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "user list failed", err)
		return
	}
	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}

// UpdateUserStatusRequest 用户启用/停用请求
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateUserStatus 启用或停用用户
// 停用立即生效：鉴权中间件按库内状态拦截后续请求。
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}

	user.IsActive = *req.IsActive
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}

	requestLog(c).Infow("user_status_updated",
		"user_id", user.ID,
		"is_active", user.IsActive,
	)
	response.Success(c, user)
}
