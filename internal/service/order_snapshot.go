package service

import (
	"github.com/velora-next/internal/models"

	"github.com/shopspring/decimal"
)

// buildOrderLines 将购物车行解析为订单项快照
// 只读目录当前状态，任一行失败则整个结账在写入前终止。
// 库存仅作下单时的校验，不预占不扣减。
func buildOrderLines(cartItems []models.CartItem) ([]models.OrderItem, models.Money, error) {
	lines := make([]models.OrderItem, 0, len(cartItems))
	subtotal := decimal.Zero

	for _, cartItem := range cartItems {
		product := cartItem.Product
		if product == nil || !product.IsActive {
			return nil, models.Money{}, ErrProductInactive
		}

		variant := matchVariant(product.Variants, cartItem.ColorID, cartItem.SizeID)
		if variant == nil {
			return nil, models.Money{}, ErrVariantNotFound
		}
		if !variant.IsActive || variant.Stock <= 0 {
			return nil, models.Money{}, ErrVariantOutOfStock
		}

		unitPrice := variant.BasePrice.Decimal
		if variant.SalePrice.Decimal.GreaterThan(decimal.Zero) {
			unitPrice = variant.SalePrice.Decimal
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))

		lines = append(lines, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSlug: product.Slug,
			VariantID:   variant.ID,
			ColorID:     variant.ColorID,
			ColorName:   variant.ColorName,
			SizeID:      variant.SizeID,
			SizeName:    variant.SizeName,
			SKU:         variant.SKU,
			Quantity:    cartItem.Quantity,
			UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
			ImageURL:    pickLineImage(product.Images, cartItem.ColorID),
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return lines, models.NewMoneyFromDecimal(subtotal), nil
}

// matchVariant 按偏好顺序匹配规格：颜色+尺码精确匹配 → 仅颜色 → 仅尺码
// 购物车行可能早于规格调整加入，降级匹配是有意的兜底而非静默替换；
// 行未携带颜色与尺码时取首个规格。
func matchVariant(variants []models.ProductVariant, colorID, sizeID *uint) *models.ProductVariant {
	if len(variants) == 0 {
		return nil
	}

	if colorID != nil && sizeID != nil {
		for i := range variants {
			v := &variants[i]
			if uintPtrEqual(v.ColorID, colorID) && uintPtrEqual(v.SizeID, sizeID) {
				return v
			}
		}
	}
	if colorID != nil {
		for i := range variants {
			v := &variants[i]
			if uintPtrEqual(v.ColorID, colorID) {
				return v
			}
		}
	}
	if sizeID != nil {
		for i := range variants {
			v := &variants[i]
			if uintPtrEqual(v.SizeID, sizeID) {
				return v
			}
		}
		return nil
	}
	if colorID != nil {
		return nil
	}
	return &variants[0]
}

// pickLineImage 选择订单项展示图：优先匹配颜色打标图，否则取排序最前的图
func pickLineImage(images []models.ProductImage, colorID *uint) string {
	if len(images) == 0 {
		return ""
	}
	if colorID != nil {
		for i := range images {
			if images[i].ColorID != nil && *images[i].ColorID == *colorID {
				return images[i].URL
			}
		}
	}
	best := images[0]
	for _, img := range images[1:] {
		if img.SortOrder < best.SortOrder {
			best = img
		}
	}
	return best.URL
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
