package common

import (
	"tiketku/src/models"
	"tiketku/src/types"

	"gorm.io/gorm"
)

// ReserveTicketType takes qty seats with a single conditional update so
// two concurrent checkouts can never oversell the same ticket type.
func ReserveTicketType(tx *gorm.DB, ticketTypeId uint, qty int) error {
	res := tx.
		Model(&models.TicketType{}).
		Where("id = ? AND available >= ?", ticketTypeId, qty).
		UpdateColumn("available", gorm.Expr("available - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrInsufficientInventory
	}
	return nil
}

// ReleaseTicketType returns seats on rejection, expiry or cancellation.
// LEAST keeps a double release from pushing available past total.
func ReleaseTicketType(tx *gorm.DB, ticketTypeId uint, qty int) error {
	return tx.
		Model(&models.TicketType{}).
		Where("id = ?", ticketTypeId).
		UpdateColumn("available", gorm.Expr("LEAST(available + ?, total)", qty)).
		Error
}
