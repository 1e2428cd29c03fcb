package models

import (
	"time"

	"tiketku/src/types"

	"github.com/google/uuid"
)

type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	UserID          uint                    `json:"user_id,omitempty"`
	EventID         uint                    `json:"event_id,omitempty"`
	Status          types.TransactionStatus `gorm:"default:'WAITING_PAYMENT'" json:"status"`
	TotalAmount     int                     `json:"total_amount"`
	PointsUsed      int                     `json:"points_used"`
	CouponDiscount  int                     `json:"coupon_discount"`
	VoucherDiscount int                     `json:"voucher_discount"`
	FinalAmount     int                     `json:"final_amount"`
	UserCouponID    *uint                   `json:"coupon_id,omitempty"`
	VoucherID       *uint                   `json:"voucher_id,omitempty"`
	PaymentDeadline time.Time               `json:"payment_deadline"`
	PaymentProof    *string                 `json:"payment_proof,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmed_at,omitempty"`
	ConfirmedByID   *uint                   `json:"confirmed_by,omitempty"`
	RejectionReason *string                 `json:"rejection_reason,omitempty"`
	Metadata        types.JSONB             `gorm:"type:jsonb" json:"metadata,omitempty"`

	User        User                `gorm:"foreignKey:user_id" json:"-"`
	Event       Event               `gorm:"foreignKey:event_id" json:"event,omitempty"`
	ConfirmedBy *User               `gorm:"foreignKey:confirmed_by_id" json:"-"`
	UserCoupon  *UserCoupon         `gorm:"foreignKey:user_coupon_id" json:"-"`
	Voucher     *Voucher            `gorm:"foreignKey:voucher_id" json:"-"`
	Tickets     []TransactionTicket `gorm:"foreignKey:transaction_id" json:"tickets,omitempty"`

	types.Timestamps
}

// TransactionTicket snapshots the unit price at checkout time so later
// price edits on the ticket type never change a settled amount.
type TransactionTicket struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid" json:"transaction_id,omitempty"`
	TicketTypeID  uint      `json:"ticket_type_id,omitempty"`
	Quantity      int       `json:"quantity"`
	UnitPrice     int       `json:"unit_price"`
	Code          *string   `json:"code,omitempty"`

	TicketType TicketType `gorm:"foreignKey:ticket_type_id" json:"ticket_type,omitempty"`

	types.Timestamps
}
