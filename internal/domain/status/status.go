// Package status holds the fixed status table shared by enrollments,
// appointments and notifications. IDs are positional and seeded at migration.
package status

import "github.com/cema-health/program-manager/internal/models"

type ID uint

const (
	Enrolled  ID = 1
	Completed ID = 2
	Dropped   ID = 3
	Sent      ID = 4
	IsRead    ID = 5
	Pending   ID = 6
	Confirmed ID = 7
	Cancelled ID = 8
)

var names = map[ID]string{
	Enrolled:  "Enrolled",
	Completed: "Completed",
	Dropped:   "Dropped",
	Sent:      "sent",
	IsRead:    "is-read",
	Pending:   "Pending",
	Confirmed: "Confirmed",
	Cancelled: "Cancelled",
}

var descriptions = map[ID]string{
	Enrolled:  "Client is actively enrolled in the program",
	Completed: "Client completed the program",
	Dropped:   "Client was removed from the program",
	Sent:      "Notification delivered",
	IsRead:    "Notification read by the recipient",
	Pending:   "Appointment awaiting confirmation",
	Confirmed: "Appointment confirmed",
	Cancelled: "Appointment cancelled",
}

func (id ID) Uint() uint { return uint(id) }

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return "Unknown"
}

// Name resolves a raw status_id column value.
func Name(raw uint) string {
	return ID(raw).String()
}

// Seed returns the rows the status table must contain, in id order.
func Seed() []models.Status {
	out := make([]models.Status, 0, len(names))
	for id := Enrolled; id <= Cancelled; id++ {
		out = append(out, models.Status{
			ID:          uint(id),
			Name:        names[id],
			Description: descriptions[id],
		})
	}
	return out
}
