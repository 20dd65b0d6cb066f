package models

import "time"

type Enrollment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `json:"-"`

	ProgramID uint    `gorm:"not null;index" json:"program_id"`
	Program   Program `json:"-"`

	StatusID uint   `gorm:"not null" json:"status_id"`
	Status   Status `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	EnrollmentDate time.Time `gorm:"not null" json:"enrollment_date"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	Notes          string    `gorm:"type:text" json:"notes"`
}
