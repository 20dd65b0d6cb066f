package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `json:"-"`

	// DoctorID is cleared when the doctor's account is deleted.
	DoctorID *uint `gorm:"index" json:"doctor_id"`
	Doctor   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ProgramID uint    `gorm:"not null;index" json:"program_id"`
	Program   Program `json:"-"`

	AppointmentDate time.Time `gorm:"type:date;not null" json:"appointment_date"`

	StatusID uint   `gorm:"not null" json:"status_id"`
	Status   Status `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Notes string `gorm:"type:text" json:"notes"`
}
