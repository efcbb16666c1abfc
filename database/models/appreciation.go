package models

import "time"

// TargetKind 点赞对象类型
type TargetKind string

const (
	TargetTrip TargetKind = "trip"
	TargetItem TargetKind = "item"
)

// Valid 是否为已知的点赞对象类型
func (k TargetKind) Valid() bool {
	return k == TargetTrip || k == TargetItem
}

// Appreciation 用户对行程或地点的点赞，每个 (user, kind, target) 至多一行
type Appreciation struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time
	UserID     uint       `gorm:"not null;uniqueIndex:idx_appreciation_target,priority:1"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_appreciation_target,priority:2;index:idx_appreciation_kind_target,priority:1"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_appreciation_target,priority:3;index:idx_appreciation_kind_target,priority:2"`
}
