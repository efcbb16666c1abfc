// Package dbtest 为仓库层和服务层测试提供独立的内存 SQLite 数据库
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/anoixa/tripill/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按测试名创建一个命名内存库并迁移全部模型
// 单连接保证同一测试内看到同一个库，事务内部必须只使用 tx
func Open(t *testing.T) *database.GormProvider {
	t.Helper()
	return OpenNamed(t, "")
}

// OpenNamed 同一测试内需要多个独立库时使用，suffix 区分不同的库
func OpenNamed(t *testing.T, suffix string) *database.GormProvider {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + suffix
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	provider := database.NewProviderFromDB(db, "sqlite")
	require.NoError(t, provider.AutoMigrate())

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return provider
}
