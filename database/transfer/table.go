// Package transfer 在两个数据库之间按表复制数据，用于 SQLite 迁移到 PostgreSQL
package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ConflictStrategy 目标库已存在相同主键时的处理方式
type ConflictStrategy string

const (
	ConflictSkip      ConflictStrategy = "skip"
	ConflictOverwrite ConflictStrategy = "overwrite"
	ConflictError     ConflictStrategy = "error"
)

// ParseConflictStrategy 解析命令行传入的冲突策略
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(s) {
	case ConflictSkip, ConflictOverwrite, ConflictError:
		return ConflictStrategy(s), nil
	default:
		return "", fmt.Errorf("invalid on-conflict strategy: %s (must be skip, overwrite, or error)", s)
	}
}

// TableStats 单表复制统计
type TableStats struct {
	Table   string
	Read    int64
	Written int64
}

// Skipped 因冲突被跳过的行数
func (s TableStats) Skipped() int64 {
	return s.Read - s.Written
}

// copier 按表复制的抽象，每个模型一个实现
type copier interface {
	table(db *gorm.DB) (string, error)
	copy(ctx context.Context, source, target *gorm.DB, batchSize int, strategy ConflictStrategy) (TableStats, error)
}

// Table 泛型单表复制器
type Table[T any] struct{}

// NewTable 创建单表复制器
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

func (t *Table[T]) parse(db *gorm.DB) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

func (t *Table[T]) table(db *gorm.DB) (string, error) {
	s, err := t.parse(db)
	if err != nil {
		return "", err
	}
	return s.Table, nil
}

// Count 统计表中行数，包含软删除的行
func (t *Table[T]) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Unscoped().Model(new(T)).Count(&count).Error
	return count, err
}

// copy 按主键顺序分页读取，联合主键的表同样适用
func (t *Table[T]) copy(ctx context.Context, source, target *gorm.DB, batchSize int, strategy ConflictStrategy) (TableStats, error) {
	s, err := t.parse(source)
	if err != nil {
		return TableStats{}, err
	}
	stats := TableStats{Table: s.Table}
	if len(s.PrimaryFieldDBNames) == 0 {
		return stats, fmt.Errorf("table %s has no primary key", s.Table)
	}
	order := strings.Join(s.PrimaryFieldDBNames, ", ")

	for offset := 0; ; offset += batchSize {
		var rows []*T
		if err := source.WithContext(ctx).Unscoped().Order(order).Limit(batchSize).Offset(offset).Find(&rows).Error; err != nil {
			return stats, fmt.Errorf("failed to read %s: %w", s.Table, err)
		}
		if len(rows) == 0 {
			return stats, nil
		}

		written, err := t.write(ctx, target, rows, strategy)
		stats.Read += int64(len(rows))
		stats.Written += written
		if err != nil {
			return stats, fmt.Errorf("failed to copy %s: %w", s.Table, err)
		}
	}
}

func (t *Table[T]) write(ctx context.Context, target *gorm.DB, rows []*T, strategy ConflictStrategy) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	db := target.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).Omit(clause.Associations)
	switch strategy {
	case ConflictSkip:
		db = db.Clauses(clause.OnConflict{DoNothing: true})
	case ConflictOverwrite:
		db = db.Clauses(clause.OnConflict{UpdateAll: true})
	}

	result := db.Create(rows)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("record already exists in target: %w", result.Error)
		}
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
