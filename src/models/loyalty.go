package models

import (
	"time"

	"tiketku/src/types"

	"github.com/google/uuid"
)

// PointEntry is an append-only row in the loyalty ledger. Spending and
// reversal are recorded as new entries, never as updates to old ones.
type PointEntry struct {
	ID            uint                 `gorm:"primarykey" json:"id"`
	UserID        uint                 `json:"user_id,omitempty"`
	Amount        int                  `json:"amount"`
	Kind          types.PointEntryKind `json:"kind"`
	TransactionID *uuid.UUID           `gorm:"type:uuid" json:"transaction_id,omitempty"`
	Description   string               `json:"description,omitempty"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`

	User        User         `gorm:"foreignKey:user_id" json:"-"`
	Transaction *Transaction `gorm:"foreignKey:transaction_id" json:"-"`

	types.Timestamps
}

// Expired reports whether a positive entry is past its expiry at t.
// Negative entries never expire.
func (p *PointEntry) Expired(t time.Time) bool {
	return p.ExpiresAt != nil && p.Amount > 0 && t.After(*p.ExpiresAt)
}
