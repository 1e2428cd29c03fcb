package models

import (
	"time"

	"tiketku/src/types"
)

// Voucher is an event-scoped discount code created by the organizer.
// Unlike coupons it is shared: usage is capped by MaxUses, not by user.
type Voucher struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	EventID       uint               `gorm:"uniqueIndex:idx_vouchers_event_code" json:"event_id,omitempty"`
	Code          string             `gorm:"uniqueIndex:idx_vouchers_event_code" json:"code"`
	DiscountType  types.DiscountType `json:"discount_type"`
	DiscountValue int                `json:"discount_value"`
	MinPurchase   int                `json:"min_purchase"`
	MaxUses       int                `json:"max_uses"`
	CurrentUses   int                `json:"current_uses"`
	ValidFrom     time.Time          `json:"valid_from"`
	ValidUntil    time.Time          `json:"valid_until"`
	IsActive      bool               `gorm:"default:true" json:"is_active"`

	Event Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}

func (v *Voucher) Usable(t time.Time) bool {
	return v.IsActive && !t.Before(v.ValidFrom) && !t.After(v.ValidUntil)
}

func (v *Voucher) Exhausted() bool {
	return v.CurrentUses >= v.MaxUses
}
