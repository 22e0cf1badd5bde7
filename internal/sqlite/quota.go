// File path: internal/sqlite/quota.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/outreachready/backend/internal/outreach"
)

// Monthly generation limits per subscription tier. A negative limit means
// unlimited.
var tierLimits = map[string]int{
	"free":         10,
	"starter":      100,
	"professional": 500,
	"enterprise":   -1,
}

const defaultTier = "free"

func currentPeriod() string {
	return time.Now().UTC().Format("2006-01")
}

type usageRow struct {
	Tier              string `db:"tier"`
	MessagesGenerated int    `db:"messages_generated"`
}

// Only message generation is metered. The counter column is resource-specific,
// so an unrecognized resource is an error rather than a shared count.
func checkResource(resource string) error {
	if resource != outreach.ResourceMessages {
		return fmt.Errorf("unknown quota resource %q", resource)
	}
	return nil
}

// CheckQuota reports whether the user may generate another message batch in
// the current period. Users with no counter row yet are on the default tier
// with zero usage. Implements outreach.QuotaGate.
func (s *Store) CheckQuota(ctx context.Context, userID, resource string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("sqlite store not initialised")
	}
	if strings.TrimSpace(userID) == "" {
		return false, fmt.Errorf("user id required")
	}
	if err := checkResource(resource); err != nil {
		return false, err
	}
	var row usageRow
	err := s.db.GetContext(ctx, &row,
		`SELECT tier, messages_generated FROM usage_counters WHERE user_id = ? AND period = ?`,
		userID, currentPeriod())
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("select usage: %w", err)
	}
	limit, ok := tierLimits[row.Tier]
	if !ok {
		limit = tierLimits[defaultTier]
	}
	if limit < 0 {
		return true, nil
	}
	return row.MessagesGenerated < limit, nil
}

// IncrementUsage bumps the user's counter for the current period, creating
// the row on first use. Implements outreach.QuotaGate.
func (s *Store) IncrementUsage(ctx context.Context, userID, resource string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id required")
	}
	if err := checkResource(resource); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_counters (user_id, period, tier, messages_generated)
                 VALUES (?, ?, ?, 1)
                 ON CONFLICT (user_id, period)
                 DO UPDATE SET messages_generated = messages_generated + 1`,
		userID, currentPeriod(), defaultTier)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return nil
}

// SetTier records the user's subscription tier for the current period. Called
// by the billing collaborator when a plan changes.
func (s *Store) SetTier(ctx context.Context, userID, tier string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	tier = strings.ToLower(strings.TrimSpace(tier))
	if _, ok := tierLimits[tier]; !ok {
		return fmt.Errorf("unknown tier %q", tier)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_counters (user_id, period, tier, messages_generated)
                 VALUES (?, ?, ?, 0)
                 ON CONFLICT (user_id, period)
                 DO UPDATE SET tier = excluded.tier`,
		userID, currentPeriod(), tier)
	if err != nil {
		return fmt.Errorf("set tier: %w", err)
	}
	return nil
}
