package types

import "errors"

var (
	ErrInsufficientInventory   = errors.New("not enough tickets available")
	ErrInsufficientPoints      = errors.New("insufficient points balance")
	ErrInvalidOrExpiredCoupon  = errors.New("coupon is invalid or expired")
	ErrCouponAlreadyUsed       = errors.New("coupon has already been used")
	ErrInvalidOrExpiredVoucher = errors.New("voucher is invalid or expired")
	ErrVoucherExhausted        = errors.New("voucher usage limit reached")
	ErrMinimumPurchaseNotMet   = errors.New("purchase amount below discount minimum")
	ErrEventEnded              = errors.New("event has already ended")
	ErrNotAwaitingConfirmation = errors.New("transaction is not awaiting confirmation")
	ErrInvalidStateTransition  = errors.New("invalid transaction state transition")
	ErrPaymentDeadlinePassed   = errors.New("payment deadline has passed")
	ErrTransactionNotFound     = errors.New("transaction not found")
)
