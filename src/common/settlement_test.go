package common

import (
	"testing"

	"tiketku/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransitionStatus(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := transitionStatus(gormDB, uuid.New(), types.TRANSACTION_WAITING_PAYMENT, types.TRANSACTION_WAITING_CONFIRMATION, nil)
	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusAlreadySettled(t *testing.T) {
	gormDB, mock := newMockDB(t)

	// status = ? guard matches no row: another settlement won the
	// transition, this one must not apply.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := transitionStatus(gormDB, uuid.New(), types.TRANSACTION_WAITING_CONFIRMATION, types.TRANSACTION_CONFIRMED, nil)
	assert.ErrorIs(t, err, types.ErrInvalidStateTransition)
	assert.Nil(t, mock.ExpectationsWereMet())
}
