// File path: internal/sqlite/types.go
package sqlite

import "time"

// Contact is a tracked outreach recipient owned by one user.
type Contact struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email,omitempty"`
	Company     string    `db:"company" json:"company,omitempty"`
	Title       string    `db:"title" json:"title,omitempty"`
	Website     string    `db:"website" json:"website,omitempty"`
	LinkedInURL string    `db:"linkedin_url" json:"linkedin_url,omitempty"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	FunnelStage string    `db:"funnel_stage" json:"funnel_stage"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Communication is one recorded exchange with a contact.
type Communication struct {
	ID        string    `db:"id" json:"id"`
	ContactID string    `db:"contact_id" json:"contact_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Channel   string    `db:"channel" json:"channel,omitempty"`
	Direction string    `db:"direction" json:"direction"`
	Content   string    `db:"content" json:"content"`
	SentAt    time.Time `db:"sent_at" json:"sent_at"`
}
