package models

import "time"

// Client is a person receiving care. Clients created together with a
// client-role User share that user's id.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName    string    `gorm:"size:100;not null;index" json:"full_name"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender      string    `gorm:"size:10" json:"gender"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Email       string    `gorm:"size:100" json:"email"`

	RegisteredAt   time.Time `gorm:"autoCreateTime" json:"registered_at"`
	RegisteredByID *uint     `json:"registered_by"`
	RegisteredBy   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Enrollments  []Enrollment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Appointments []Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
