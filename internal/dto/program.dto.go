package dto

import "github.com/cema-health/program-manager/internal/models"

const DateLayout = "2006-01-02"

type ProgramItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProgramDetail struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	Duration    int    `json:"duration"`
}

func NewProgramItems(programs []models.Program) []ProgramItem {
	out := make([]ProgramItem, 0, len(programs))
	for _, p := range programs {
		out = append(out, ProgramItem{ID: p.ID, Name: p.Name})
	}
	return out
}

func NewProgramDetail(p models.Program) ProgramDetail {
	return ProgramDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(DateLayout),
		Duration:    p.Duration,
	}
}
