package app

import (
	"context"
	"fmt"

	"github.com/anoixa/tripill/cache"
	"github.com/anoixa/tripill/config"
	"github.com/anoixa/tripill/database"
	accountsrepo "github.com/anoixa/tripill/database/repo/accounts"
	albumsrepo "github.com/anoixa/tripill/database/repo/albums"
	"github.com/anoixa/tripill/database/repo/appreciations"
	itemsrepo "github.com/anoixa/tripill/database/repo/items"
	tripsrepo "github.com/anoixa/tripill/database/repo/trips"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/anoixa/tripill/internal/auth"
	"github.com/anoixa/tripill/internal/items"
	"github.com/anoixa/tripill/internal/trips"
	"github.com/anoixa/tripill/utils"
)

// Container 依赖注入容器 - 管理所有服务的生命周期
type Container struct {
	config   *config.Config
	provider database.Provider
	cache    cache.Provider

	AccountsRepo      *accountsrepo.Repository
	AlbumsRepo        *albumsrepo.Repository
	TripsRepo         *tripsrepo.Repository
	ItemsRepo         *itemsrepo.Repository
	AppreciationsRepo *appreciations.Repository

	Accounts *accounts.Service
	Ledger   *appreciation.Ledger
	Trips    *trips.Service
	Items    *items.Service
	JWT      *auth.JWTService
}

// NewContainer 创建新的依赖注入容器
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
	}
}

// Init 初始化数据库、缓存和全部服务
func (c *Container) Init(ctx context.Context) error {
	if err := c.InitDatabase(); err != nil {
		return err
	}
	if err := c.InitServices(ctx); err != nil {
		return err
	}
	return nil
}

// InitDatabase 只初始化数据库和仓库，供不需要服务层的命令使用
func (c *Container) InitDatabase() error {
	utils.LogIfDev("Initializing DI container...")

	provider, err := database.NewGormProvider(c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.provider = provider
	utils.LogIfDevf("Database provider initialized: %s", provider.Name())

	c.initRepositories()
	return nil
}

// InitServices 初始化缓存和服务，需要先调用 InitDatabase
func (c *Container) InitServices(ctx context.Context) error {
	if err := c.InitCache(ctx); err != nil {
		return err
	}

	c.Accounts = accounts.NewService(c.AccountsRepo, c.cache, c.config.CacheUserTTL)
	c.Ledger = appreciation.NewLedger(c.AppreciationsRepo)
	c.Trips = trips.NewService(c.TripsRepo, c.AlbumsRepo, c.Accounts, c.Ledger)
	c.Items = items.NewService(c.ItemsRepo, c.Trips, c.Accounts, c.Ledger)

	utils.LogIfDev("DI container initialized successfully")
	return nil
}

// InitCache 初始化缓存提供者
func (c *Container) InitCache(ctx context.Context) error {
	if c.cache != nil {
		return nil
	}
	provider, err := cache.NewProvider(ctx, c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	c.cache = provider
	utils.LogIfDevf("Cache provider initialized: %s", provider.Name())
	return nil
}

// InitAuth 初始化 JWT 服务
func (c *Container) InitAuth() error {
	jwtService, err := auth.NewJWTService(c.config.JWTSecret, c.config.JWTExpiresIn)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT: %w", err)
	}
	c.JWT = jwtService
	return nil
}

// initRepositories 初始化所有仓库
func (c *Container) initRepositories() {
	c.AccountsRepo = accountsrepo.NewRepository(c.provider)
	c.AlbumsRepo = albumsrepo.NewRepository(c.provider)
	c.TripsRepo = tripsrepo.NewRepository(c.provider)
	c.ItemsRepo = itemsrepo.NewRepository(c.provider)
	c.AppreciationsRepo = appreciations.NewRepository(c.provider)
	utils.LogIfDev("Repositories initialized")
}

// GetDatabaseProvider 获取数据库提供者
func (c *Container) GetDatabaseProvider() database.Provider {
	return c.provider
}

// GetCacheProvider 获取缓存提供者
func (c *Container) GetCacheProvider() cache.Provider {
	return c.cache
}

// GetConfig 获取配置
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Close 关闭所有服务
func (c *Container) Close() error {
	utils.LogIfDev("Closing DI container...")

	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			utils.LogIfDevf("Error closing cache provider: %v", err)
		}
	}

	if c.provider != nil {
		if err := c.provider.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	utils.LogIfDev("DI container closed")
	return nil
}
