// File path: internal/sqlite/queries.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outreachready/backend/internal/outreach"
)

// ErrNotFound marks a lookup that matched no row for the requesting user.
var ErrNotFound = errors.New("not found")

// CreateContact inserts a new contact, assigning an id and creation time if
// absent.
func (s *Store) CreateContact(ctx context.Context, contact *Contact) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("contact name required")
	}
	if strings.TrimSpace(contact.UserID) == "" {
		return fmt.Errorf("contact user id required")
	}
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	if contact.FunnelStage == "" {
		contact.FunnelStage = "cold"
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO contacts
                (id, user_id, name, email, company, title, website, linkedin_url, notes, funnel_stage, created_at)
                VALUES (:id, :user_id, :name, :email, :company, :title, :website, :linkedin_url, :notes, :funnel_stage, :created_at)`,
		contact)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetContact retrieves one contact scoped to its owning user.
func (s *Store) GetContact(ctx context.Context, id, userID string) (*Contact, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	var contact Contact
	err := s.db.GetContext(ctx, &contact,
		`SELECT * FROM contacts WHERE id = ? AND user_id = ?`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select contact: %w", err)
	}
	return &contact, nil
}

// ListContacts returns the user's contacts, most recent first.
func (s *Store) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	contacts := []Contact{}
	if err := s.db.SelectContext(ctx, &contacts,
		`SELECT * FROM contacts WHERE user_id = ? ORDER BY created_at DESC`, userID); err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	return contacts, nil
}

// InsertCommunication records one exchange with a contact.
func (s *Store) InsertCommunication(ctx context.Context, comm *Communication) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	if strings.TrimSpace(comm.Content) == "" {
		return fmt.Errorf("communication content required")
	}
	if comm.ID == "" {
		comm.ID = uuid.NewString()
	}
	if comm.Direction == "" {
		comm.Direction = "outbound"
	}
	if comm.SentAt.IsZero() {
		comm.SentAt = time.Now().UTC()
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO communications
                (id, contact_id, user_id, channel, direction, content, sent_at)
                VALUES (:id, :contact_id, :user_id, :channel, :direction, :content, :sent_at)`,
		comm)
	if err != nil {
		return fmt.Errorf("insert communication: %w", err)
	}
	return nil
}

// RecentCommunications returns up to limit exchanges for a contact, oldest
// first, so the rendered history reads chronologically.
func (s *Store) RecentCommunications(ctx context.Context, contactID, userID string, limit int) ([]Communication, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	if limit <= 0 {
		limit = 20
	}
	comms := []Communication{}
	if err := s.db.SelectContext(ctx, &comms,
		`SELECT * FROM (
                        SELECT * FROM communications WHERE contact_id = ? AND user_id = ?
                        ORDER BY sent_at DESC LIMIT ?
                ) ORDER BY sent_at ASC`, contactID, userID, limit); err != nil {
		return nil, fmt.Errorf("select communications: %w", err)
	}
	return comms, nil
}

// InsertMessageVariants persists a generation batch. Implements
// outreach.MessageStore.
func (s *Store) InsertMessageVariants(ctx context.Context, records []outreach.MessageRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	for _, record := range records {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO generated_messages
                        (id, contact_id, user_id, session_id, channel, tone, variant, content,
                         match_reason, product_pitched, buyer_context, seller_context, created_at)
                        VALUES (:id, :contact_id, :user_id, :session_id, :channel, :tone, :variant, :content,
                         :match_reason, :product_pitched, :buyer_context, :seller_context, :created_at)`,
			record); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert message variant: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit message variants: %w", err)
	}
	return nil
}

// ListMessages returns the user's generated messages, most recent first.
func (s *Store) ListMessages(ctx context.Context, userID string, limit int) ([]outreach.MessageRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	messages := []outreach.MessageRecord{}
	if err := s.db.SelectContext(ctx, &messages,
		`SELECT * FROM generated_messages WHERE user_id = ?
                 ORDER BY created_at DESC, variant ASC LIMIT ?`, userID, limit); err != nil {
		return nil, fmt.Errorf("select generated messages: %w", err)
	}
	return messages, nil
}
