package provider

import (
	"github.com/velora-next/internal/authz"
	"github.com/velora-next/internal/cache"
	"github.com/velora-next/internal/config"
	"github.com/velora-next/internal/logger"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/queue"
	"github.com/velora-next/internal/repository"
	"github.com/velora-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo           repository.UserRepository
	AddressRepo        repository.AddressRepository
	CategoryRepo       repository.CategoryRepository
	ProductRepo        repository.ProductRepository
	CartRepo           repository.CartRepository
	WishlistRepo       repository.WishlistRepository
	CouponRepo         repository.CouponRepository
	RedemptionRepo     repository.CouponRedemptionRepository
	OrderRepo          repository.OrderRepository
	ShippingPolicyRepo repository.ShippingPolicyRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	CatalogService     *service.CatalogService
	CartService        *service.CartService
	WishlistService    *service.WishlistService
	AddressService     *service.AddressService
	CouponService      *service.CouponService
	CouponAdminService *service.CouponAdminService
	ShippingService    *service.ShippingService
	OrderService       *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.RedemptionRepo = repository.NewCouponRedemptionRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ShippingPolicyRepo = repository.NewShippingPolicyRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.RedemptionRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.ShippingService = service.NewShippingService(c.ShippingPolicyRepo, &c.Config.Shipping)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.AddressRepo, c.CartRepo, c.UserRepo, c.CouponRepo, c.RedemptionRepo, c.CouponService, c.ShippingService, c.QueueClient)
}
