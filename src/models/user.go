package models

import (
	"tiketku/src/types"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name,omitempty"`
	Email        string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Password     string         `json:"-"`
	Role         types.UserRole `gorm:"default:'CUSTOMER'" json:"role,omitempty"`
	Points       int            `json:"points"`
	ReferralCode string         `gorm:"uniqueIndex" json:"referral_code,omitempty"`
	ReferredByID *uint          `json:"referred_by,omitempty"`

	ReferredBy   *User         `gorm:"foreignKey:referred_by_id" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:user_id" json:"transactions,omitempty"`
	PointEntries []PointEntry  `gorm:"foreignKey:user_id" json:"point_entries,omitempty"`
	Coupons      []UserCoupon  `gorm:"foreignKey:user_id" json:"coupons,omitempty"`

	types.Timestamps
}
