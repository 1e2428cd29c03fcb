package common

import (
	"fmt"
	"log"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"

	"gorm.io/gorm"
)

// checkoutMetadata records what the buyer presented, for the admin
// review screen. The voucher code is kept verbatim and a points
// request clipped by the base amount keeps its original figure.
func checkoutMetadata(body *types.CheckoutRequestBody, bd *DiscountBreakdown) types.JSONB {
	meta := types.JSONB{}
	if body.VoucherCode != "" {
		meta["voucher_code"] = body.VoucherCode
	}
	if body.PointsUsed > bd.PointsApplied {
		meta["points_requested"] = body.PointsUsed
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// ProcessCheckout prices and reserves an order as one atomic unit.
// Either the seats, the points, the coupon and the voucher use are all
// held and a WAITING_PAYMENT transaction exists, or nothing changed.
func ProcessCheckout(userId uint, body *types.CheckoutRequestBody) (*models.Transaction, error) {
	gdb := db.GetDb()
	var txn *models.Transaction
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: body.EventID}).
			First(&event).
			Error; err != nil {
			return fmt.Errorf("event %d does not exist", body.EventID)
		}
		now := time.Now()
		if event.Ended(now) {
			return types.ErrEventEnded
		}

		var ticketType models.TicketType
		if err := tx.
			Where(&models.TicketType{ID: body.TicketTypeID, EventID: event.ID}).
			First(&ticketType).
			Error; err != nil {
			return fmt.Errorf("ticket type %d does not exist for event %d", body.TicketTypeID, event.ID)
		}

		if err := ReserveTicketType(tx, ticketType.ID, body.Quantity); err != nil {
			return err
		}

		var user models.User
		if err := tx.Where(&models.User{ID: userId}).First(&user).Error; err != nil {
			return err
		}

		base := ticketType.Price * body.Quantity
		bd, err := ResolveDiscount(tx, &user, event.ID, base, body)
		if err != nil {
			return err
		}

		txn = &models.Transaction{
			UserID:          userId,
			EventID:         event.ID,
			Status:          types.TRANSACTION_WAITING_PAYMENT,
			TotalAmount:     bd.BaseAmount,
			PointsUsed:      bd.PointsApplied,
			CouponDiscount:  bd.CouponDiscount,
			VoucherDiscount: bd.VoucherDiscount,
			FinalAmount:     bd.FinalAmount,
			UserCouponID:    bd.UserCouponID,
			VoucherID:       bd.VoucherID,
			PaymentDeadline: now.Add(config.PaymentWindow),
			Metadata:        checkoutMetadata(body, bd),
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		ticket := models.TransactionTicket{
			TransactionID: txn.ID,
			TicketTypeID:  ticketType.ID,
			Quantity:      body.Quantity,
			UnitPrice:     ticketType.Price,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		txn.Tickets = []models.TransactionTicket{ticket}

		if bd.PointsApplied > 0 {
			entry := models.PointEntry{
				UserID:        userId,
				Amount:        -bd.PointsApplied,
				Kind:          types.POINTS_USED_PURCHASE,
				TransactionID: &txn.ID,
				Description:   fmt.Sprintf("Points used on order %s", txn.ID),
			}
			if err := AppendPointEntry(tx, &entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ProcessCheckout failed for user [%d]: %s\n", userId, err.Error())
		return nil, err
	}
	return txn, nil
}
