package domain

import "time"

type ContactMessage struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Message  string    `json:"message"`
	DateSent time.Time `json:"date_sent"`
	IsHidden bool      `json:"is_hidden"`
}

func (m ContactMessage) Archived() bool { return m.IsHidden }
