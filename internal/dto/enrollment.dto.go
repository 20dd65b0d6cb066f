package dto

import "github.com/cema-health/program-manager/internal/models"

// EnrollmentListItem keeps the camelCase keys the front end reads.
type EnrollmentListItem struct {
	ProgramName string `json:"programName"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

func NewEnrollmentListItems(rows []models.Enrollment) []EnrollmentListItem {
	out := make([]EnrollmentListItem, 0, len(rows))
	for _, e := range rows {
		out = append(out, EnrollmentListItem{
			ProgramName: e.Program.Name,
			Date:        e.EnrollmentDate.Format(DateLayout),
			Status:      statusName(e.Status, e.StatusID),
		})
	}
	return out
}
