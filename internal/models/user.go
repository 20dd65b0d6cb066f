package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	PasswordHash string `gorm:"size:256;not null" json:"-"`
	Role         string `gorm:"size:50;not null;index" json:"role"`

	Notifications []Notification `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}
