package common

import (
	"log"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"

	"gorm.io/gorm"
)

// AppendPointEntry writes a ledger row and moves the user's cached
// balance by the same amount in the same transaction. Debits carry a
// points >= ? guard in the update itself, so of two concurrent spends
// of the same balance exactly one succeeds.
func AppendPointEntry(tx *gorm.DB, entry *models.PointEntry) error {
	if err := tx.Create(entry).Error; err != nil {
		return err
	}
	if entry.Amount < 0 {
		debit := -entry.Amount
		res := tx.
			Model(&models.User{}).
			Where("id = ? AND points >= ?", entry.UserID, debit).
			UpdateColumn("points", gorm.Expr("points - ?", debit))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrInsufficientPoints
		}
		return nil
	}
	return tx.
		Model(&models.User{}).
		Where("id = ?", entry.UserID).
		UpdateColumn("points", gorm.Expr("GREATEST(points + ?, 0)", entry.Amount)).
		Error
}

// PointExpiry is the expiry stamped on every earned or restored entry.
func PointExpiry(from time.Time) time.Time {
	return from.AddDate(0, config.PointLifetimeMonths, 0)
}

// ActivePointsBalance recomputes the balance from the ledger: negative
// entries always count, positive entries only until they expire.
func ActivePointsBalance(tx *gorm.DB, userId uint) (int, error) {
	var balance int
	err := tx.
		Model(&models.PointEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userId).
		Where("amount < 0 OR expires_at IS NULL OR expires_at > ?", time.Now()).
		Scan(&balance).
		Error
	if err != nil {
		return 0, err
	}
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

// ReconcileUserPoints rewrites the cached balance from the ledger.
func ReconcileUserPoints(tx *gorm.DB, userId uint) (int, error) {
	balance, err := ActivePointsBalance(tx, userId)
	if err != nil {
		return 0, err
	}
	err = tx.
		Model(&models.User{}).
		Where("id = ?", userId).
		UpdateColumn("points", balance).
		Error
	return balance, err
}

// ReconcileExpiredPoints is the daily sweep that drops expired earned
// points out of every affected user's cached balance.
func ReconcileExpiredPoints() {
	gdb := db.GetDb()
	var userIds []uint
	if err := gdb.
		Model(&models.PointEntry{}).
		Distinct("user_id").
		Where("amount > 0 AND expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Pluck("user_id", &userIds).
		Error; err != nil {
		log.Printf("Error finding users with expired points: %s\n", err.Error())
		return
	}
	for _, uid := range userIds {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			_, err := ReconcileUserPoints(tx, uid)
			return err
		})
		if err != nil {
			log.Printf("Error reconciling points for user [%d]: %s\n", uid, err.Error())
		}
	}
	if len(userIds) > 0 {
		log.Printf("Reconciled point balances for %d users\n", len(userIds))
	}
}
