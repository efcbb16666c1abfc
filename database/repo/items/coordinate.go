package items

import (
	"github.com/anoixa/tripill/database/models"
	"gorm.io/gorm"
)

// Coordinate 地理坐标（角度）
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateOf 返回地点的坐标
func CoordinateOf(item *models.Item) Coordinate {
	return Coordinate{Lat: item.Lat, Lng: item.Lng}
}

// SameCoordinate 判断两个坐标是否为同一地点：精确相等，无容差
// 与 CoordinateScope 必须保持一致
func SameCoordinate(a, b Coordinate) bool {
	return a.Lat == b.Lat && a.Lng == b.Lng
}

// CoordinateScope SameCoordinate 的 SQL 版本
func CoordinateScope(c Coordinate) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("items.lat = ? AND items.lng = ?", c.Lat, c.Lng)
	}
}
