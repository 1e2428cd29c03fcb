package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type UserRole string

const (
	ROLE_CUSTOMER  UserRole = "CUSTOMER"
	ROLE_ORGANIZER UserRole = "ORGANIZER"
	ROLE_ADMIN     UserRole = "ADMIN"
)

type TransactionStatus string

const (
	TRANSACTION_WAITING_PAYMENT      TransactionStatus = "WAITING_PAYMENT"
	TRANSACTION_WAITING_CONFIRMATION TransactionStatus = "WAITING_CONFIRMATION"
	TRANSACTION_CONFIRMED            TransactionStatus = "CONFIRMED"
	TRANSACTION_REJECTED             TransactionStatus = "REJECTED"
	TRANSACTION_EXPIRED              TransactionStatus = "EXPIRED"
	TRANSACTION_CANCELED             TransactionStatus = "CANCELED"
)

// Terminal reports whether no further transition is defined out of s.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case TRANSACTION_CONFIRMED, TRANSACTION_REJECTED, TRANSACTION_EXPIRED, TRANSACTION_CANCELED:
		return true
	}
	return false
}

type DiscountType string

const (
	DISCOUNT_FIXED      DiscountType = "FIXED"
	DISCOUNT_PERCENTAGE DiscountType = "PERCENTAGE"
)

type PointEntryKind string

const (
	POINTS_EARNED_REFERRAL PointEntryKind = "EARNED_REFERRAL"
	POINTS_EARNED_PURCHASE PointEntryKind = "EARNED_PURCHASE"
	POINTS_USED_PURCHASE   PointEntryKind = "USED_PURCHASE"
	POINTS_RESTORED        PointEntryKind = "RESTORED"
)

type RegisterUserRequestBody struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role,omitempty" binding:"omitempty,oneof=CUSTOMER ORGANIZER"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateEventRequestBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndDate     string `json:"end_date" binding:"required,bookabledate,gtdate=StartDate" time_format:"2006-01-02 15:04:05 -07:00"`
	CategoryID  uint   `json:"category,omitempty"`
	IsFree      bool   `json:"is_free,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type CreateTicketTypeRequestBody struct {
	EventID     uint   `json:"event" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price" binding:"min=0"`
	Total       int    `json:"total" binding:"required,min=1"`
}

type CheckoutRequestBody struct {
	EventID      uint   `json:"event" binding:"required"`
	TicketTypeID uint   `json:"ticket_type" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	PointsUsed   int    `json:"points_used,omitempty" binding:"omitempty,min=0"`
	UserCouponID *uint  `json:"coupon_id,omitempty"`
	VoucherCode  string `json:"voucher_code,omitempty"`
}

type RejectTransactionRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

type CreateCouponRequestBody struct {
	Code          string `json:"code" binding:"required"`
	DiscountType  string `json:"discount_type" binding:"required,oneof=FIXED PERCENTAGE"`
	DiscountValue int    `json:"discount_value" binding:"required,min=1"`
	MaxDiscount   *int   `json:"max_discount,omitempty" binding:"omitempty,min=1"`
	MinPurchase   int    `json:"min_purchase,omitempty" binding:"omitempty,min=0"`
	ValidFrom     string `json:"valid_from" binding:"required" time_format:"2006-01-02 15:04:05 -07:00"`
	ValidUntil    string `json:"valid_until" binding:"required,gtdate=ValidFrom" time_format:"2006-01-02 15:04:05 -07:00"`
	Description   string `json:"description,omitempty"`
}

type AssignCouponRequestBody struct {
	UserID uint `json:"user" binding:"required"`
}

type CreateVoucherRequestBody struct {
	EventID       uint   `json:"event" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DiscountType  string `json:"discount_type" binding:"required,oneof=FIXED PERCENTAGE"`
	DiscountValue int    `json:"discount_value" binding:"required,min=1"`
	MinPurchase   int    `json:"min_purchase,omitempty" binding:"omitempty,min=0"`
	MaxUses       int    `json:"max_uses" binding:"required,min=1"`
	ValidFrom     string `json:"valid_from" binding:"required" time_format:"2006-01-02 15:04:05 -07:00"`
	ValidUntil    string `json:"valid_until" binding:"required,gtdate=ValidFrom" time_format:"2006-01-02 15:04:05 -07:00"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type TransactionURIParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type TransactionsQueryFilters struct {
	Status string `form:"status,omitempty" binding:"omitempty,oneof=WAITING_PAYMENT WAITING_CONFIRMATION CONFIRMED REJECTED EXPIRED CANCELED"`
	Page   int    `form:"page,omitempty" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

type EventsQueryFilters struct {
	Search   string `form:"q,omitempty"`
	Category uint   `form:"category,omitempty"`
	Upcoming bool   `form:"upcoming,omitempty"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
