package models

import "time"

type Program struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	// Duration in weeks.
	Duration int `gorm:"not null" json:"duration"`

	Enrollments  []Enrollment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Appointments []Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
