package dto

import (
	"time"

	domainappointment "github.com/cema-health/program-manager/internal/domain/appointment"
	domainclient "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/models"
)

// ======================================================
// Search
// ======================================================

type QuickSearchItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EnrollmentView struct {
	ID          uint   `json:"id"`
	ProgramID   uint   `json:"program_id"`
	ProgramName string `json:"program_name"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type ClientSummary struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Gender       string           `json:"gender"`
	Phone        string           `json:"phone"`
	Age          int              `json:"age"`
	RegisteredBy *string          `json:"registered_by"`
	Enrollments  []EnrollmentView `json:"enrollments"`
}

func NewQuickSearchItems(clients []models.Client) []QuickSearchItem {
	out := make([]QuickSearchItem, 0, len(clients))
	for _, c := range clients {
		out = append(out, QuickSearchItem{ID: c.ID, Name: c.FullName, Email: c.Email})
	}
	return out
}

func statusName(s models.Status, id uint) string {
	if s.Name != "" {
		return s.Name
	}
	return status.Name(id)
}

func NewEnrollmentView(e models.Enrollment) EnrollmentView {
	return EnrollmentView{
		ID:          e.ID,
		ProgramID:   e.ProgramID,
		ProgramName: e.Program.Name,
		Status:      statusName(e.Status, e.StatusID),
		StartDate:   e.StartDate.Format(DateLayout),
		EndDate:     e.EndDate.Format(DateLayout),
	}
}

func NewClientSummary(c models.Client, now time.Time) ClientSummary {
	var registeredBy *string
	if c.RegisteredBy != nil {
		name := c.RegisteredBy.Username
		registeredBy = &name
	}

	enrollments := make([]EnrollmentView, 0, len(c.Enrollments))
	for _, e := range c.Enrollments {
		enrollments = append(enrollments, NewEnrollmentView(e))
	}

	return ClientSummary{
		ID:           c.ID,
		Name:         c.FullName,
		Email:        c.Email,
		Gender:       c.Gender,
		Phone:        c.Phone,
		Age:          domainclient.Age(c.DateOfBirth, now),
		RegisteredBy: registeredBy,
		Enrollments:  enrollments,
	}
}

func NewClientSummaries(clients []models.Client, now time.Time) []ClientSummary {
	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, NewClientSummary(c, now))
	}
	return out
}

// ======================================================
// Profile
// ======================================================

type ClientDetail struct {
	ID           uint    `json:"id"`
	FullName     string  `json:"full_name"`
	DateOfBirth  string  `json:"date_of_birth"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	RegisteredAt string  `json:"registered_at"`
	RegisteredBy *string `json:"registered_by"`
}

type AppointmentView struct {
	ID          uint   `json:"id"`
	ProgramName string `json:"program_name"`
	Doctor      string `json:"doctor"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type Profile struct {
	Client             ClientDetail      `json:"client"`
	ActiveEnrollments  []EnrollmentView  `json:"active_enrollments"`
	DroppedEnrollments []EnrollmentView  `json:"dropped_enrollments"`
	Appointments       []AppointmentView `json:"appointments"`
}

func NewClientDetail(c models.Client, now time.Time) ClientDetail {
	var registeredBy *string
	if c.RegisteredBy != nil {
		name := c.RegisteredBy.Username
		registeredBy = &name
	}

	return ClientDetail{
		ID:           c.ID,
		FullName:     c.FullName,
		DateOfBirth:  c.DateOfBirth.Format(DateLayout),
		Age:          domainclient.Age(c.DateOfBirth, now),
		Gender:       c.Gender,
		Phone:        c.Phone,
		Email:        c.Email,
		RegisteredAt: c.RegisteredAt.Format(time.RFC3339),
		RegisteredBy: registeredBy,
	}
}

func NewAppointmentView(ap models.Appointment) AppointmentView {
	return AppointmentView{
		ID:          ap.ID,
		ProgramName: ap.Program.Name,
		Doctor:      domainappointment.DoctorName(ap),
		Date:        ap.AppointmentDate.Format(DateLayout),
		Status:      statusName(ap.Status, ap.StatusID),
		Notes:       ap.Notes,
	}
}

// NewProfile splits enrollments by status. Completed enrollments appear in
// neither list.
func NewProfile(c models.Client, now time.Time) Profile {
	p := Profile{
		Client:             NewClientDetail(c, now),
		ActiveEnrollments:  []EnrollmentView{},
		DroppedEnrollments: []EnrollmentView{},
		Appointments:       make([]AppointmentView, 0, len(c.Appointments)),
	}

	for _, e := range c.Enrollments {
		switch status.ID(e.StatusID) {
		case status.Enrolled:
			p.ActiveEnrollments = append(p.ActiveEnrollments, NewEnrollmentView(e))
		case status.Dropped:
			p.DroppedEnrollments = append(p.DroppedEnrollments, NewEnrollmentView(e))
		}
	}

	for _, ap := range c.Appointments {
		p.Appointments = append(p.Appointments, NewAppointmentView(ap))
	}

	return p
}
