package models

import "time"

// Gender 性别
type Gender int8

const (
	GenderFemale Gender = 1
	GenderMale   Gender = 2
	GenderOther  Gender = 3
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name"`
	Image     string    `gorm:"type:varchar(500)" json:"image"`
	Gender    Gender    `gorm:"default:3;not null" json:"gender"`
}
