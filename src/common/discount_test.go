package common

import (
	"testing"
	"time"

	"tiketku/src/models"
	"tiketku/src/types"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscountValue(t *testing.T) {
	assert.Equal(t, 50000, ComputeDiscountValue(types.DISCOUNT_FIXED, 50000, 299000))
	assert.Equal(t, 29900, ComputeDiscountValue(types.DISCOUNT_PERCENTAGE, 10, 299000))
	// percentage rounds down
	assert.Equal(t, 14950, ComputeDiscountValue(types.DISCOUNT_PERCENTAGE, 5, 299000))
	assert.Equal(t, 0, ComputeDiscountValue(types.DISCOUNT_PERCENTAGE, 10, 9))
}

func TestCapDiscount(t *testing.T) {
	ceiling := 20000
	// 10% of 300000 would be 30000, the ceiling holds it at 20000
	assert.Equal(t, 20000, CapDiscount(ComputeDiscountValue(types.DISCOUNT_PERCENTAGE, 10, 300000), &ceiling))
	assert.Equal(t, 15000, CapDiscount(15000, &ceiling))
	assert.Equal(t, 30000, CapDiscount(30000, nil))
}

func TestClampFinalAmount(t *testing.T) {
	assert.Equal(t, 274000, ClampFinalAmount(299000, 25000, 0, 0))
	assert.Equal(t, 0, ClampFinalAmount(100000, 50000, 40000, 30000))
	assert.Equal(t, 100000, ClampFinalAmount(100000, 0, 0, 0))
}

func TestRewardPoints(t *testing.T) {
	assert.Equal(t, 13700, RewardPoints(274000))
	assert.Equal(t, 0, RewardPoints(0))
	// floor, never round up
	assert.Equal(t, 4, RewardPoints(99))
	assert.Equal(t, 5, RewardPoints(100))
}

func TestPointExpiry(t *testing.T) {
	from := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC), PointExpiry(from))
}

func TestTransactionStatusTerminal(t *testing.T) {
	assert.False(t, types.TRANSACTION_WAITING_PAYMENT.Terminal())
	assert.False(t, types.TRANSACTION_WAITING_CONFIRMATION.Terminal())
	assert.True(t, types.TRANSACTION_CONFIRMED.Terminal())
	assert.True(t, types.TRANSACTION_REJECTED.Terminal())
	assert.True(t, types.TRANSACTION_EXPIRED.Terminal())
	assert.True(t, types.TRANSACTION_CANCELED.Terminal())
}

func TestCouponUsableWindow(t *testing.T) {
	now := time.Now()
	coupon := models.Coupon{
		IsActive:   true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	}
	assert.True(t, coupon.Usable(now))

	coupon.IsActive = false
	assert.False(t, coupon.Usable(now))

	coupon.IsActive = true
	assert.False(t, coupon.Usable(now.Add(2*time.Hour)))
	assert.False(t, coupon.Usable(now.Add(-2*time.Hour)))
}

func TestTicketTypeSold(t *testing.T) {
	tier := models.TicketType{Total: 100, Available: 60}
	assert.Equal(t, 40, tier.Sold())
	tier.Available = 100
	assert.Equal(t, 0, tier.Sold())
}

func TestVoucherExhausted(t *testing.T) {
	voucher := models.Voucher{MaxUses: 3, CurrentUses: 2}
	assert.False(t, voucher.Exhausted())
	voucher.CurrentUses = 3
	assert.True(t, voucher.Exhausted())
}

func TestPointEntryExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	entry := models.PointEntry{Amount: 100, ExpiresAt: &past}
	assert.True(t, entry.Expired(now))

	// negative entries never expire
	entry.Amount = -100
	assert.False(t, entry.Expired(now))

	entry = models.PointEntry{Amount: 100}
	assert.False(t, entry.Expired(now))
}
