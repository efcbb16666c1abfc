package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/anoixa/tripill/config"
	"gorm.io/gorm"
)

// GormProvider GORM 数据库提供者实现
type GormProvider struct {
	db     *gorm.DB
	dbType string
}

// NewGormProvider 按配置创建数据库提供者
func NewGormProvider(cfg *config.Config) (*GormProvider, error) {
	db, err := NewDB(cfg)
	if err != nil {
		return nil, err
	}

	dbType := cfg.DBType
	if dbType == "" {
		dbType = "sqlite"
	}
	log.Printf("Database provider '%s' initialized", dbType)

	return &GormProvider{db: db, dbType: dbType}, nil
}

// NewProviderFromDB 包装已有的连接，迁移工具和测试使用
func NewProviderFromDB(db *gorm.DB, dbType string) *GormProvider {
	return &GormProvider{db: db, dbType: dbType}
}

func (p *GormProvider) DB() *gorm.DB {
	return p.db
}

func (p *GormProvider) WithContext(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}

func (p *GormProvider) Transaction(ctx context.Context, fn TxFunc) error {
	return p.db.WithContext(ctx).Transaction(fn)
}

// AutoMigrate 自动迁移数据库结构，不传模型时迁移全部业务模型
func (p *GormProvider) AutoMigrate(models ...interface{}) error {
	if len(models) == 0 {
		models = Models()
	}
	if err := p.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}

func (p *GormProvider) SQLDB() (*sql.DB, error) {
	return p.db.DB()
}

// Ping 检查数据库连接
func (p *GormProvider) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close 关闭数据库连接
func (p *GormProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	log.Println("Closing database connection...")
	return sqlDB.Close()
}

func (p *GormProvider) Name() string {
	return p.dbType
}
