package dto

import (
	"time"

	"github.com/cema-health/program-manager/internal/models"
)

type UserView struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func NewUserViews(users []models.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out
}

type NotificationView struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationView(n models.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		Message:   n.Message,
		Status:    statusName(n.Status, n.StatusID),
		CreatedAt: n.CreatedAt,
	}
}

func NewNotificationViews(rows []models.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(rows))
	for _, n := range rows {
		out = append(out, NewNotificationView(n))
	}
	return out
}
