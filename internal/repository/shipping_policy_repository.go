package repository

import (
	"errors"

	"github.com/velora-next/internal/models"

	"gorm.io/gorm"
)

// ShippingPolicyRepository 运费策略数据访问接口
type ShippingPolicyRepository interface {
	GetActive() (*models.ShippingPolicy, error)
	Upsert(policy *models.ShippingPolicy) error
}

// GormShippingPolicyRepository GORM 实现
type GormShippingPolicyRepository struct {
	db *gorm.DB
}

// NewShippingPolicyRepository 创建运费策略仓库
func NewShippingPolicyRepository(db *gorm.DB) *GormShippingPolicyRepository {
	return &GormShippingPolicyRepository{db: db}
}

// GetActive 获取当前启用的运费策略
func (r *GormShippingPolicyRepository) GetActive() (*models.ShippingPolicy, error) {
	var policy models.ShippingPolicy
	if err := r.db.Where("is_active = ?", true).
		Order("id desc").
		First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// Upsert 更新运费策略（存在启用记录则覆盖，否则新建）
func (r *GormShippingPolicyRepository) Upsert(policy *models.ShippingPolicy) error {
	existing, err := r.GetActive()
	if err != nil {
		return err
	}
	if existing == nil {
		policy.IsActive = true
		return r.db.Create(policy).Error
	}
	return r.db.Model(existing).Updates(map[string]interface{}{
		"threshold": policy.Threshold,
		"fee":       policy.Fee,
		"is_active": true,
	}).Error
}
