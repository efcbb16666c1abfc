package models

import "time"

// Item 行程中的地点
// 同一行程内 ordinal 恒为 {0..n-1}，(trip_id, lat, lng) 唯一
type Item struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TripID      uint    `gorm:"not null;uniqueIndex:idx_item_trip_coordinate,priority:1;index:idx_item_trip_ordinal,priority:1"`
	Lat         float64 `gorm:"not null;uniqueIndex:idx_item_trip_coordinate,priority:2;index:idx_item_coordinate,priority:1"`
	Lng         float64 `gorm:"not null;uniqueIndex:idx_item_trip_coordinate,priority:3;index:idx_item_coordinate,priority:2"`
	Location    string  `gorm:"type:varchar(256)"`
	Description string  `gorm:"type:text"`
	Image       string  `gorm:"type:varchar(500)"`
	StartDate   *time.Time
	EndDate     *time.Time
	Note        string `gorm:"type:text"`
	IsShared    bool   `gorm:"not null;default:false"`
	Ordinal     int    `gorm:"not null;index:idx_item_trip_ordinal,priority:2"`
}
