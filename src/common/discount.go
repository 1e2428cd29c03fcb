package common

import (
	"time"

	"tiketku/src/models"
	"tiketku/src/types"

	"gorm.io/gorm"
)

// DiscountBreakdown is the priced result of a checkout before any row
// is written. All amounts are in rupiah.
type DiscountBreakdown struct {
	BaseAmount      int
	PointsApplied   int
	CouponDiscount  int
	VoucherDiscount int
	FinalAmount     int

	UserCouponID *uint
	VoucherID    *uint
}

// ComputeDiscountValue applies a FIXED or PERCENTAGE instrument to a
// base amount. Percentage discounts round down.
func ComputeDiscountValue(t types.DiscountType, value int, base int) int {
	if t == types.DISCOUNT_PERCENTAGE {
		return base * value / 100
	}
	return value
}

// CapDiscount bounds a computed discount by the instrument's optional
// ceiling. Used by percentage coupons so a large base cannot turn a
// small coupon into an outsized discount.
func CapDiscount(discount int, max *int) int {
	if max != nil && discount > *max {
		return *max
	}
	return discount
}

// ClampFinalAmount never lets stacked discounts drive the total below
// zero. Excess discount value is forfeited, not refunded.
func ClampFinalAmount(base, points, coupon, voucher int) int {
	final := base - points - coupon - voucher
	if final < 0 {
		return 0
	}
	return final
}

// ResolveDiscount validates and prices every instrument on a checkout
// inside the caller's transaction. It consumes the coupon and the
// voucher use as it goes, so a later rollback of tx undoes everything.
func ResolveDiscount(tx *gorm.DB, user *models.User, eventId uint, base int, body *types.CheckoutRequestBody) (*DiscountBreakdown, error) {
	now := time.Now()
	bd := &DiscountBreakdown{BaseAmount: base}

	if body.PointsUsed > 0 {
		// The cached balance may still hold expired grants between
		// sweeps, so validate against a fresh reconcile. The debit in
		// AppendPointEntry carries its own guard for concurrent spends.
		balance, err := ReconcileUserPoints(tx, user.ID)
		if err != nil {
			return nil, err
		}
		if body.PointsUsed > balance {
			return nil, types.ErrInsufficientPoints
		}
		bd.PointsApplied = body.PointsUsed
		if bd.PointsApplied > base {
			bd.PointsApplied = base
		}
	}

	if body.UserCouponID != nil {
		var uc models.UserCoupon
		if err := tx.
			Where(&models.UserCoupon{ID: *body.UserCouponID, UserID: user.ID}).
			Preload("Coupon").
			First(&uc).
			Error; err != nil {
			return nil, types.ErrInvalidOrExpiredCoupon
		}
		if uc.UsedAt != nil {
			return nil, types.ErrCouponAlreadyUsed
		}
		if !uc.Coupon.Usable(now) {
			return nil, types.ErrInvalidOrExpiredCoupon
		}
		if base < uc.Coupon.MinPurchase {
			return nil, types.ErrMinimumPurchaseNotMet
		}
		res := tx.
			Model(&models.UserCoupon{}).
			Where("id = ? AND used_at IS NULL", uc.ID).
			Update("used_at", now)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, types.ErrCouponAlreadyUsed
		}
		bd.CouponDiscount = CapDiscount(
			ComputeDiscountValue(uc.Coupon.DiscountType, uc.Coupon.DiscountValue, base),
			uc.Coupon.MaxDiscount,
		)
		bd.UserCouponID = &uc.ID
	}

	if body.VoucherCode != "" {
		var voucher models.Voucher
		if err := tx.
			Where(&models.Voucher{EventID: eventId, Code: body.VoucherCode}).
			First(&voucher).
			Error; err != nil {
			return nil, types.ErrInvalidOrExpiredVoucher
		}
		if !voucher.Usable(now) {
			return nil, types.ErrInvalidOrExpiredVoucher
		}
		if voucher.Exhausted() {
			return nil, types.ErrVoucherExhausted
		}
		if base < voucher.MinPurchase {
			return nil, types.ErrMinimumPurchaseNotMet
		}
		res := tx.
			Model(&models.Voucher{}).
			Where("id = ? AND current_uses < max_uses", voucher.ID).
			UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, types.ErrVoucherExhausted
		}
		bd.VoucherDiscount = ComputeDiscountValue(voucher.DiscountType, voucher.DiscountValue, base)
		bd.VoucherID = &voucher.ID
	}

	bd.FinalAmount = ClampFinalAmount(base, bd.PointsApplied, bd.CouponDiscount, bd.VoucherDiscount)
	return bd, nil
}
