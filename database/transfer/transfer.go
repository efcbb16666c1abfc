package transfer

import (
	"context"
	"fmt"
	"log"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/models"
	"gorm.io/gorm"
)

// Options 迁移参数
type Options struct {
	BatchSize  int
	OnConflict ConflictStrategy
	// SkipSchema 为 true 时不在目标库执行 AutoMigrate
	SkipSchema bool
}

// Stats 迁移统计
type Stats struct {
	Tables []TableStats
	Errors []string
}

// Written 写入的总行数
func (s *Stats) Written() int64 {
	var total int64
	for _, t := range s.Tables {
		total += t.Written
	}
	return total
}

// tables 按外键依赖排序
func tables() []copier {
	return []copier{
		NewTable[models.User](),
		NewTable[models.Album](),
		NewTable[models.Trip](),
		NewTable[models.TripCollaborator](),
		NewTable[models.Item](),
		NewTable[models.Appreciation](),
	}
}

// sequenceTables 使用自增主键的表
var sequenceTables = []string{"users", "albums", "trips", "items", "appreciations"}

// Run 将 source 中的全部数据复制到 target
// 冲突策略为 error 时遇到第一处错误即停止，其余策略记录错误后继续下一张表
func Run(ctx context.Context, source, target *gorm.DB, opts Options) (*Stats, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}

	if !opts.SkipSchema {
		log.Println("Migrating database schema...")
		if err := database.AutoMigrate(target); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	stats := &Stats{}
	for _, t := range tables() {
		tableStats, err := t.copy(ctx, source, target, opts.BatchSize, opts.OnConflict)
		stats.Tables = append(stats.Tables, tableStats)
		if err != nil {
			stats.Errors = append(stats.Errors, err.Error())
			if opts.OnConflict == ConflictError {
				return stats, err
			}
			continue
		}
		log.Printf("Migrated %s: %d read, %d written", tableStats.Table, tableStats.Read, tableStats.Written)
	}

	if err := resetSequences(ctx, target); err != nil {
		stats.Errors = append(stats.Errors, err.Error())
	}

	if len(stats.Errors) > 0 {
		return stats, fmt.Errorf("migration completed with %d errors", len(stats.Errors))
	}
	return stats, nil
}

// resetSequences 显式写入主键后，PostgreSQL 的序列需要追上最大ID
func resetSequences(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range sequenceTables {
		sql := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)", table, table)
		if err := db.WithContext(ctx).Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to reset sequence of %s: %w", table, err)
		}
	}
	return nil
}
