package service

import (
	"github.com/velora-next/internal/config"
	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ShippingService 运费策略服务
type ShippingService struct {
	repo     repository.ShippingPolicyRepository
	fallback *models.ShippingPolicy
}

// NewShippingService 创建运费策略服务
func NewShippingService(repo repository.ShippingPolicyRepository, cfg *config.ShippingConfig) *ShippingService {
	return &ShippingService{
		repo:     repo,
		fallback: buildFallbackPolicy(cfg),
	}
}

// buildFallbackPolicy 数据库无生效策略时的兜底值，优先取配置文件
func buildFallbackPolicy(cfg *config.ShippingConfig) *models.ShippingPolicy {
	policy := &models.ShippingPolicy{
		Threshold: models.NewMoneyFromInt(constants.DefaultShippingThreshold),
		Fee:       models.NewMoneyFromInt(constants.DefaultShippingFee),
		IsActive:  true,
	}
	if cfg == nil {
		return policy
	}
	if d, err := decimal.NewFromString(cfg.FreeThreshold); err == nil && d.GreaterThanOrEqual(decimal.Zero) {
		policy.Threshold = models.NewMoneyFromDecimal(d)
	}
	if d, err := decimal.NewFromString(cfg.Fee); err == nil && d.GreaterThanOrEqual(decimal.Zero) {
		policy.Fee = models.NewMoneyFromDecimal(d)
	}
	return policy
}

// Active 获取当前生效的运费策略（无配置时回退兜底值）
func (s *ShippingService) Active() (*models.ShippingPolicy, error) {
	policy, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}
	if policy == nil {
		if s.fallback != nil {
			return s.fallback, nil
		}
		return buildFallbackPolicy(nil), nil
	}
	return policy, nil
}

// FeeFor 计算给定小计应付的运费（达到门槛免运费）
func (s *ShippingService) FeeFor(subtotal models.Money) (models.Money, error) {
	policy, err := s.Active()
	if err != nil {
		return models.Money{}, err
	}
	if subtotal.Decimal.GreaterThanOrEqual(policy.Threshold.Decimal) {
		return models.NewMoneyFromDecimal(decimal.Zero), nil
	}
	return policy.Fee, nil
}

// UpdatePolicyInput 更新运费策略输入
type UpdatePolicyInput struct {
	Threshold models.Money
	Fee       models.Money
}

// UpdatePolicy 更新运费策略
func (s *ShippingService) UpdatePolicy(input UpdatePolicyInput) (*models.ShippingPolicy, error) {
	if input.Threshold.Decimal.LessThan(decimal.Zero) || input.Fee.Decimal.LessThan(decimal.Zero) {
		return nil, ErrShippingPolicyInvalid
	}
	policy := &models.ShippingPolicy{
		Threshold: input.Threshold,
		Fee:       input.Fee,
	}
	if err := s.repo.Upsert(policy); err != nil {
		return nil, err
	}
	return s.Active()
}
