package main

import (
	"fmt"
	"time"

	"github.com/velora-next/internal/config"
	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/logger"
	"github.com/velora-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func money(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

func uintPtr(v uint) *uint {
	return &v
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "dresses", Name: "Dresses", SortOrder: 300},
		{Slug: "tops", Name: "Tops", SortOrder: 200},
		{Slug: "accessories", Name: "Accessories", SortOrder: 100},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"dresses", "tops", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品（含规格与图片）
	products := []models.Product{
		{
			CategoryID:  categoryIDs["dresses"],
			Slug:        "floral-midi-dress",
			Name:        "Floral Midi Dress",
			Description: "Lightweight floral print midi dress with a relaxed fit.",
			IsActive:    true,
			SortOrder:   300,
			Variants: []models.ProductVariant{
				{ColorID: uintPtr(1), ColorName: "Rose", SizeID: uintPtr(2), SizeName: "M", SKU: "FMD-ROSE-M", BasePrice: money(2499), SalePrice: money(1999), Stock: 20, IsActive: true},
				{ColorID: uintPtr(1), ColorName: "Rose", SizeID: uintPtr(3), SizeName: "L", SKU: "FMD-ROSE-L", BasePrice: money(2499), Stock: 12, IsActive: true},
				{ColorID: uintPtr(2), ColorName: "Navy", SizeID: uintPtr(2), SizeName: "M", SKU: "FMD-NAVY-M", BasePrice: money(2499), Stock: 0, IsActive: true},
			},
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=800", SortOrder: 10},
				{URL: "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=800", ColorID: uintPtr(1), SortOrder: 20},
			},
		},
		{
			CategoryID:  categoryIDs["tops"],
			Slug:        "linen-shirt",
			Name:        "Linen Shirt",
			Description: "Breathable linen shirt for everyday wear.",
			IsActive:    true,
			SortOrder:   200,
			Variants: []models.ProductVariant{
				{ColorID: uintPtr(3), ColorName: "White", SizeID: uintPtr(1), SizeName: "S", SKU: "LNS-WHITE-S", BasePrice: money(1299), Stock: 30, IsActive: true},
				{ColorID: uintPtr(3), ColorName: "White", SizeID: uintPtr(2), SizeName: "M", SKU: "LNS-WHITE-M", BasePrice: money(1299), Stock: 25, IsActive: true},
			},
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=800", SortOrder: 10},
			},
		},
		{
			CategoryID:  categoryIDs["accessories"],
			Slug:        "leather-belt",
			Name:        "Leather Belt",
			Description: "Full-grain leather belt with brass buckle.",
			IsActive:    true,
			SortOrder:   100,
			Variants: []models.ProductVariant{
				{ColorID: uintPtr(4), ColorName: "Brown", SKU: "LB-BROWN", BasePrice: money(899), Stock: 50, IsActive: true},
			},
			Images: []models.ProductImage{
				{URL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800", SortOrder: 10},
			},
		},
		{
			CategoryID:  categoryIDs["tops"],
			Slug:        "retired-knit-sweater",
			Name:        "Knit Sweater (Retired)",
			Description: "Discontinued sample used to verify inactive product handling.",
			IsActive:    false,
			SortOrder:   50,
			Variants: []models.ProductVariant{
				{ColorID: uintPtr(5), ColorName: "Grey", SizeID: uintPtr(2), SizeName: "M", SKU: "KS-GREY-M", BasePrice: money(1599), Stock: 5, IsActive: true},
			},
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", prod.Slug)
		}
	}

	// 添加示例账号（客户 + 配送员）
	seedUsers := []struct {
		Name     string
		Email    string
		Phone    string
		Role     string
		Password string
	}{
		{Name: "Demo Customer", Email: "customer@velora.local", Phone: "+8613800000001", Role: constants.RoleCustomer, Password: "customer123"},
		{Name: "Demo Partner", Email: "partner@velora.local", Phone: "+8613800000002", Role: constants.RolePartner, Password: "partner123"},
	}

	for _, seed := range seedUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", seed.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", seed.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", seed.Email, err)
			continue
		}
		user := models.User{
			Name:         seed.Name,
			Email:        seed.Email,
			Phone:        seed.Phone,
			PasswordHash: string(hash),
			Role:         seed.Role,
			IsActive:     true,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", seed.Email, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", seed.Email, seed.Role)
		}
	}

	// 运费策略
	var policy models.ShippingPolicy
	if err := models.DB.Where("is_active = ?", true).First(&policy).Error; err != nil {
		policy = models.ShippingPolicy{
			Threshold: money(constants.DefaultShippingThreshold),
			Fee:       money(99),
			IsActive:  true,
		}
		if err := models.DB.Create(&policy).Error; err != nil {
			stdLog.Printf("Failed to create shipping policy: %v", err)
		} else {
			stdLog.Printf("Created shipping policy: free over %s, fee %s", policy.Threshold.String(), policy.Fee.String())
		}
	} else {
		stdLog.Println("Shipping policy already exists")
	}

	// 示例优惠券
	now := time.Now()
	endsAt := now.AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:           "WELCOME100",
			Type:           constants.CouponTypeFixed,
			Value:          money(100),
			MinOrderAmount: money(500),
			GlobalLimit:    1000,
			PerUserLimit:   1,
			StartsAt:       &now,
			EndsAt:         &endsAt,
			IsActive:       true,
		},
		{
			Code:           "SAVE10",
			Type:           constants.CouponTypePercent,
			Value:          money(10),
			MinOrderAmount: money(1000),
			MaxDiscount:    money(50),
			GlobalLimit:    500,
			PerUserLimit:   2,
			StartsAt:       &now,
			EndsAt:         &endsAt,
			IsActive:       true,
		},
	}

	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
		} else {
			stdLog.Printf("Created coupon: %s", coupon.Code)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 4 Products (含规格与图片，1 个下架样例)")
	fmt.Println("- 2 Users (customer / partner) + default admin")
	fmt.Println("- 1 Shipping policy")
	fmt.Println("- 2 Coupons (WELCOME100 / SAVE10)")
}
