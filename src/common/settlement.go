package common

import (
	"fmt"
	"log"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func loadTransaction(tx *gorm.DB, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := tx.
		Where(&models.Transaction{ID: id}).
		Preload("User").
		Preload("Event").
		Preload("Tickets").
		First(&txn).
		Error; err != nil {
		return nil, types.ErrTransactionNotFound
	}
	return &txn, nil
}

// transitionStatus is the single gate for every settlement move. The
// guarded update makes the transition linearizable: of two concurrent
// settlements exactly one sees RowsAffected > 0.
func transitionStatus(tx *gorm.DB, id uuid.UUID, from, to types.TransactionStatus, updates map[string]any) error {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	res := tx.
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrInvalidStateTransition
	}
	return nil
}

// releaseHolds undoes what checkout reserved: seats go back to the
// pool and spent points come back as a RESTORED entry. The consumed
// coupon and the voucher use stay spent.
func releaseHolds(tx *gorm.DB, txn *models.Transaction) error {
	for _, t := range txn.Tickets {
		if err := ReleaseTicketType(tx, t.TicketTypeID, t.Quantity); err != nil {
			return err
		}
	}
	if txn.PointsUsed > 0 {
		expiry := PointExpiry(time.Now())
		entry := models.PointEntry{
			UserID:        txn.UserID,
			Amount:        txn.PointsUsed,
			Kind:          types.POINTS_RESTORED,
			TransactionID: &txn.ID,
			Description:   fmt.Sprintf("Points restored from order %s", txn.ID),
			ExpiresAt:     &expiry,
		}
		if err := AppendPointEntry(tx, &entry); err != nil {
			return err
		}
	}
	return nil
}

// RewardPoints is the loyalty reward for a confirmed purchase,
// rounded down. Free orders earn nothing.
func RewardPoints(finalAmount int) int {
	return finalAmount * config.RewardRatePercent / 100
}

// ConfirmTransaction settles a paid order: the status flips exactly
// once, reward points land with an expiry, and each ticket line gets
// its entry code.
func ConfirmTransaction(id uuid.UUID, adminId uint) (*models.Transaction, error) {
	gdb := db.GetDb()
	var txn *models.Transaction
	err := gdb.Transaction(func(tx *gorm.DB) error {
		loaded, err := loadTransaction(tx, id)
		if err != nil {
			return err
		}
		txn = loaded
		if txn.Status != types.TRANSACTION_WAITING_CONFIRMATION {
			return types.ErrNotAwaitingConfirmation
		}
		now := time.Now()
		if err := transitionStatus(tx, id, types.TRANSACTION_WAITING_CONFIRMATION, types.TRANSACTION_CONFIRMED, map[string]any{
			"confirmed_at":    now,
			"confirmed_by_id": adminId,
		}); err != nil {
			return types.ErrNotAwaitingConfirmation
		}

		reward := RewardPoints(txn.FinalAmount)
		if reward > 0 {
			expiry := PointExpiry(now)
			entry := models.PointEntry{
				UserID:        txn.UserID,
				Amount:        reward,
				Kind:          types.POINTS_EARNED_PURCHASE,
				TransactionID: &txn.ID,
				Description:   fmt.Sprintf("Reward for order %s", txn.ID),
				ExpiresAt:     &expiry,
			}
			if err := AppendPointEntry(tx, &entry); err != nil {
				return err
			}
		}

		for i := range txn.Tickets {
			code := uuid.NewString()
			if err := tx.
				Model(&models.TransactionTicket{}).
				Where("id = ?", txn.Tickets[i].ID).
				Update("code", code).
				Error; err != nil {
				return err
			}
			txn.Tickets[i].Code = &code
		}

		txn.Status = types.TRANSACTION_CONFIRMED
		txn.ConfirmedAt = &now
		txn.ConfirmedByID = &adminId
		return nil
	})
	if err != nil {
		return nil, err
	}
	NotifyConfirmation(txn)
	return txn, nil
}

// RejectTransaction turns down a payment proof and gives the buyer
// back everything that can come back.
func RejectTransaction(id uuid.UUID, adminId uint, reason string) (*models.Transaction, error) {
	gdb := db.GetDb()
	var txn *models.Transaction
	err := gdb.Transaction(func(tx *gorm.DB) error {
		loaded, err := loadTransaction(tx, id)
		if err != nil {
			return err
		}
		txn = loaded
		if txn.Status != types.TRANSACTION_WAITING_CONFIRMATION {
			return types.ErrNotAwaitingConfirmation
		}
		if err := transitionStatus(tx, id, types.TRANSACTION_WAITING_CONFIRMATION, types.TRANSACTION_REJECTED, map[string]any{
			"rejection_reason": reason,
			"confirmed_by_id":  adminId,
		}); err != nil {
			return types.ErrNotAwaitingConfirmation
		}
		if err := releaseHolds(tx, txn); err != nil {
			return err
		}
		txn.Status = types.TRANSACTION_REJECTED
		txn.RejectionReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	NotifyRejection(txn, reason)
	return txn, nil
}

// CancelTransaction lets the buyer back out while the order is still
// unpaid.
func CancelTransaction(id uuid.UUID, userId uint) (*models.Transaction, error) {
	gdb := db.GetDb()
	var txn *models.Transaction
	err := gdb.Transaction(func(tx *gorm.DB) error {
		loaded, err := loadTransaction(tx, id)
		if err != nil {
			return err
		}
		txn = loaded
		if txn.UserID != userId {
			return types.ErrTransactionNotFound
		}
		if txn.Status != types.TRANSACTION_WAITING_PAYMENT {
			return types.ErrInvalidStateTransition
		}
		if err := transitionStatus(tx, id, types.TRANSACTION_WAITING_PAYMENT, types.TRANSACTION_CANCELED, nil); err != nil {
			return err
		}
		if err := releaseHolds(tx, txn); err != nil {
			return err
		}
		txn.Status = types.TRANSACTION_CANCELED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RecordPaymentProof attaches the uploaded proof and moves the order
// to the admin's review queue. Late uploads are refused; the sweep
// will expire the order instead.
func RecordPaymentProof(id uuid.UUID, userId uint, proofPath string) (*models.Transaction, error) {
	gdb := db.GetDb()
	var txn *models.Transaction
	err := gdb.Transaction(func(tx *gorm.DB) error {
		loaded, err := loadTransaction(tx, id)
		if err != nil {
			return err
		}
		txn = loaded
		if txn.UserID != userId {
			return types.ErrTransactionNotFound
		}
		if txn.Status != types.TRANSACTION_WAITING_PAYMENT {
			return types.ErrInvalidStateTransition
		}
		if time.Now().After(txn.PaymentDeadline) {
			return types.ErrPaymentDeadlinePassed
		}
		if err := transitionStatus(tx, id, types.TRANSACTION_WAITING_PAYMENT, types.TRANSACTION_WAITING_CONFIRMATION, map[string]any{
			"payment_proof": proofPath,
		}); err != nil {
			return err
		}
		txn.Status = types.TRANSACTION_WAITING_CONFIRMATION
		txn.PaymentProof = &proofPath
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ExpireOverdueTransactions is the sweep job behind the payment
// deadline. Each overdue order is rolled back in its own transaction
// so one failure never blocks the rest.
func ExpireOverdueTransactions() {
	gdb := db.GetDb()
	var ids []uuid.UUID
	if err := gdb.
		Model(&models.Transaction{}).
		Where("status = ? AND payment_deadline < ?", types.TRANSACTION_WAITING_PAYMENT, time.Now()).
		Pluck("id", &ids).
		Error; err != nil {
		log.Printf("Error finding overdue transactions: %s\n", err.Error())
		return
	}
	for _, id := range ids {
		var txn *models.Transaction
		err := gdb.Transaction(func(tx *gorm.DB) error {
			loaded, err := loadTransaction(tx, id)
			if err != nil {
				return err
			}
			txn = loaded
			if err := transitionStatus(tx, id, types.TRANSACTION_WAITING_PAYMENT, types.TRANSACTION_EXPIRED, nil); err != nil {
				return err
			}
			return releaseHolds(tx, txn)
		})
		if err != nil {
			log.Printf("Error expiring transaction [%s]: %s\n", id, err.Error())
			continue
		}
		log.Printf("Expired transaction [%s]\n", id)
		NotifyExpiry(txn)
	}
}
