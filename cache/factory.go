package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/anoixa/tripill/config"
)

// NewProvider 按配置创建缓存提供者
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.CacheType {
	case "", "memory":
		provider, err := NewMemoryCache(DefaultMemoryConfig())
		if err != nil {
			return nil, err
		}
		log.Println("Cache provider 'memory' initialized")
		return provider, nil
	case "redis":
		provider, err := NewRedisCache(ctx, RedisConfig{
			Address:  cfg.CacheRedisAddr,
			Password: cfg.CacheRedisPassword,
			DB:       cfg.CacheRedisDB,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Cache provider 'redis' initialized at %s", cfg.CacheRedisAddr)
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}

// Clear 清空指定前缀下的缓存，返回删除的键数量（内存缓存无法统计时返回 -1）
func Clear(ctx context.Context, provider Provider, kb *KeyBuilder) (int, error) {
	switch p := provider.(type) {
	case *RedisCache:
		return p.DeletePattern(ctx, kb.Pattern())
	case *MemoryCache:
		p.Clear()
		return -1, nil
	default:
		return 0, fmt.Errorf("cache provider %s does not support clearing", provider.Name())
	}
}
