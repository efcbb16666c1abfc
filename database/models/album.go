package models

import "gorm.io/gorm"

// Album 行程的软分组，删除相册只解除关联，不删除行程
type Album struct {
	gorm.Model
	UserID uint   `gorm:"not null;index"`
	Name   string `gorm:"type:varchar(256);not null"`

	Trips []*Trip `gorm:"foreignKey:AlbumID"`
}
