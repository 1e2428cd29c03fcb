package common

import (
	"testing"
	"time"

	"tiketku/src/models"
	"tiketku/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAppendPointEntryDebit(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "point_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return AppendPointEntry(tx, &models.PointEntry{
			UserID: 1,
			Amount: -25000,
			Kind:   types.POINTS_USED_PURCHASE,
		})
	})
	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestAppendPointEntryDebitOverdraft(t *testing.T) {
	gormDB, mock := newMockDB(t)

	// points >= ? guard finds no row: a concurrent spend already took
	// the balance. The ledger insert must roll back with the debit.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "point_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return AppendPointEntry(tx, &models.PointEntry{
			UserID: 1,
			Amount: -25000,
			Kind:   types.POINTS_USED_PURCHASE,
		})
	})
	assert.ErrorIs(t, err, types.ErrInsufficientPoints)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestAppendPointEntryCredit(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "point_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expiry := time.Now().AddDate(0, 3, 0)
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return AppendPointEntry(tx, &models.PointEntry{
			UserID:    1,
			Amount:    10000,
			Kind:      types.POINTS_EARNED_REFERRAL,
			ExpiresAt: &expiry,
		})
	})
	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}
