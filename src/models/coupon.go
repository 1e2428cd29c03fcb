package models

import (
	"time"

	"tiketku/src/types"
)

type Coupon struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	Code          string             `gorm:"uniqueIndex" json:"code"`
	Description   *string            `json:"description,omitempty"`
	DiscountType  types.DiscountType `json:"discount_type"`
	DiscountValue int                `json:"discount_value"`
	MaxDiscount   *int               `json:"max_discount,omitempty"`
	MinPurchase   int                `json:"min_purchase"`
	ValidFrom     time.Time          `json:"valid_from"`
	ValidUntil    time.Time          `json:"valid_until"`
	IsActive      bool               `gorm:"default:true" json:"is_active"`

	UserCoupons []UserCoupon `gorm:"foreignKey:coupon_id" json:"-"`

	types.Timestamps
}

// Usable reports whether the coupon can discount a checkout at t.
func (c *Coupon) Usable(t time.Time) bool {
	return c.IsActive && !t.Before(c.ValidFrom) && !t.After(c.ValidUntil)
}

// UserCoupon is a single-use grant of a Coupon to one user. UsedAt is
// set exactly once, at checkout, and never cleared by a later rollback.
type UserCoupon struct {
	ID       uint       `gorm:"primarykey" json:"id"`
	UserID   uint       `json:"user_id,omitempty"`
	CouponID uint       `json:"coupon_id,omitempty"`
	UsedAt   *time.Time `json:"used_at,omitempty"`

	User   User   `gorm:"foreignKey:user_id" json:"-"`
	Coupon Coupon `gorm:"foreignKey:coupon_id" json:"coupon,omitempty"`

	types.Timestamps
}
