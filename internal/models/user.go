package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（customer/partner/admin 三种角色共用）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                          // 主键
	Name         string         `gorm:"not null" json:"name"`                          // 姓名
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`             // 邮箱
	Phone        string         `gorm:"index;type:varchar(32)" json:"phone"`           // 手机号
	PasswordHash string         `gorm:"not null" json:"-"`                             // 密码哈希（不返回给前端）
	Role         string         `gorm:"index;not null;default:'customer'" json:"role"` // 角色（customer/partner/admin）
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`  // 是否启用
	LastLoginAt  *time.Time     `json:"last_login_at"`                                 // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
