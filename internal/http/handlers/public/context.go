package public

import (
	"strings"

	handlershared "github.com/velora-next/internal/http/handlers/shared"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidMsg, typeInvalidMsg string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidMsg, typeInvalidMsg)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "invalid user id", "invalid user id type")
}

func getContextString(c *gin.Context, key string) string {
	value, ok := c.Get(key)
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

// getCouponIdentity 从认证主体声明构造兑换身份
func getCouponIdentity(c *gin.Context, userID uint) service.CouponIdentity {
	return service.CouponIdentity{
		UserID: userID,
		Email:  getContextString(c, "user_email"),
		Phone:  getContextString(c, "user_phone"),
	}
}
