// Package appreciation 记录用户对行程和地点的点赞
//
// 每个 (用户, 对象) 只有“已赞/未赞”两种状态，Toggle 是唯一的状态转换。
// 点赞数不做缓存，每次都从当前事务状态统计。
package appreciation

import (
	"context"
	"errors"

	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/database/repo/appreciations"
	"github.com/anoixa/tripill/internal/apperr"
	"gorm.io/gorm"
)

// Target 点赞对象
type Target struct {
	Kind models.TargetKind
	ID   uint
}

// TripTarget 行程点赞对象
func TripTarget(id uint) Target {
	return Target{Kind: models.TargetTrip, ID: id}
}

// ItemTarget 地点点赞对象
func ItemTarget(id uint) Target {
	return Target{Kind: models.TargetItem, ID: id}
}

// Result Toggle 之后的状态
type Result struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"total_likes"`
}

// Ledger 点赞账本
type Ledger struct {
	repo *appreciations.Repository
}

// NewLedger 创建点赞账本
func NewLedger(repo *appreciations.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Toggle 切换用户对目标的点赞状态
func (l *Ledger) Toggle(ctx context.Context, userID uint, target Target) (*Result, error) {
	if !target.Kind.Valid() {
		return nil, apperr.Invalid("unknown target kind %q", target.Kind)
	}

	liked, total, err := l.repo.Toggle(ctx, userID, target.Kind, target.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("%s %d not found", target.Kind, target.ID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "toggle like on %s %d", target.Kind, target.ID)
	}
	return &Result{Liked: liked, TotalLikes: total}, nil
}

// CountLikes 统计目标的点赞数
func (l *Ledger) CountLikes(ctx context.Context, target Target) (int64, error) {
	total, err := l.repo.Count(ctx, target.Kind, target.ID)
	if err != nil {
		return 0, apperr.Internal(err, "count likes on %s %d", target.Kind, target.ID)
	}
	return total, nil
}

// IsLikedBy 用户是否点赞了目标
func (l *Ledger) IsLikedBy(ctx context.Context, userID uint, target Target) (bool, error) {
	liked, err := l.repo.Exists(ctx, userID, target.Kind, target.ID)
	if err != nil {
		return false, apperr.Internal(err, "check like on %s %d", target.Kind, target.ID)
	}
	return liked, nil
}

// CountMany 批量统计点赞数，用于列表展示
func (l *Ledger) CountMany(ctx context.Context, kind models.TargetKind, ids []uint) (map[uint]int64, error) {
	counts, err := l.repo.CountMany(ctx, kind, ids)
	if err != nil {
		return nil, apperr.Internal(err, "count likes on %d %s targets", len(ids), kind)
	}
	return counts, nil
}

// LikedSet 批量查询用户点赞过的目标
func (l *Ledger) LikedSet(ctx context.Context, userID uint, kind models.TargetKind, ids []uint) (map[uint]bool, error) {
	liked, err := l.repo.LikedSet(ctx, userID, kind, ids)
	if err != nil {
		return nil, apperr.Internal(err, "load likes of user %d", userID)
	}
	return liked, nil
}
