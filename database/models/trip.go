package models

import "time"

type Trip struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     uint   `gorm:"not null;index"`
	AlbumID     *uint  `gorm:"index"`
	Name        string `gorm:"type:varchar(256);not null"`
	Location    string `gorm:"type:varchar(256)"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:varchar(500)"`
	StartDate   *time.Time
	EndDate     *time.Time
}

// Days 返回行程天数，任一日期缺失时为 0
func (t *Trip) Days() int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	d := t.EndDate.Sub(*t.StartDate)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// TripCollaborator 行程协作者
type TripCollaborator struct {
	TripID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}
