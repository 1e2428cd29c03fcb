package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"tiketku/src/common"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"
	"tiketku/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// settlementErrorResponse maps domain errors onto HTTP statuses.
// Unknown errors stay generic so internals never leak to the client.
func settlementErrorResponse(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrTransactionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInsufficientInventory),
		errors.Is(err, types.ErrInsufficientPoints),
		errors.Is(err, types.ErrInvalidOrExpiredCoupon),
		errors.Is(err, types.ErrCouponAlreadyUsed),
		errors.Is(err, types.ErrInvalidOrExpiredVoucher),
		errors.Is(err, types.ErrVoucherExhausted),
		errors.Is(err, types.ErrMinimumPurchaseNotMet),
		errors.Is(err, types.ErrEventEnded),
		errors.Is(err, types.ErrNotAwaitingConfirmation),
		errors.Is(err, types.ErrInvalidStateTransition),
		errors.Is(err, types.ErrPaymentDeadlinePassed):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("settlement error: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

func transactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			txn, err := common.ProcessCheckout(userId, &body)
			if err != nil {
				settlementErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": txn})
		}).
		GET("/transactions", func(ctx *gin.Context) {
			var filters types.TransactionsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			limit := filters.Limit
			if limit == 0 {
				limit = 20
			}
			page := filters.Page
			if page == 0 {
				page = 1
			}
			db := db.GetDb()
			q := db.
				Model(&models.Transaction{}).
				Where(&models.Transaction{UserID: userId}).
				Preload("Event").
				Preload("Tickets").
				Order("created_at desc").
				Limit(limit).
				Offset((page - 1) * limit)
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			var transactions []models.Transaction
			if err := q.Find(&transactions).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": transactions, "count": len(transactions)})
		}).
		GET("/transactions/:id", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			id := uuid.MustParse(params.ID)
			var txn models.Transaction
			db := db.GetDb()
			if err := db.
				Where(&models.Transaction{ID: id, UserID: userId}).
				Preload("Event").
				Preload("Tickets.TicketType").
				First(&txn).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrTransactionNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/transactions/:id/cancel", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			txn, err := common.CancelTransaction(uuid.MustParse(params.ID), userId)
			if err != nil {
				settlementErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/transactions/:id/payment-proof", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			file, err := ctx.FormFile("proof")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "proof file is required"})
				return
			}
			userId := ctx.GetUint("id")
			uploadDir := os.Getenv("UPLOAD_DIR")
			filename := fmt.Sprintf("%s%s", params.ID, path.Ext(file.Filename))
			dst := path.Join(uploadDir, "proofs", filename)
			if err := ctx.SaveUploadedFile(file, dst); err != nil {
				log.Printf("Error saving payment proof [%s]: %s\n", dst, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
				return
			}
			txn, err := common.RecordPaymentProof(uuid.MustParse(params.ID), userId, dst)
			if err != nil {
				settlementErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		GET("/transactions/:id/ticket-code", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			id := uuid.MustParse(params.ID)
			var txn models.Transaction
			db := db.GetDb()
			if err := db.
				Where(&models.Transaction{ID: id, UserID: userId, Status: types.TRANSACTION_CONFIRMED}).
				Preload("Tickets").
				Preload("Event").
				First(&txn).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrTransactionNotFound.Error()})
				return
			}
			if time.Now().After(txn.Event.EndDate) {
				settlementErrorResponse(ctx, types.ErrEventEnded)
				return
			}
			if len(txn.Tickets) == 0 || txn.Tickets[0].Code == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "no ticket code issued"})
				return
			}
			filepath, err := utils.GenerateTicketQR(*txn.Tickets[0].Code)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate e-ticket"})
				return
			}
			ctx.FileAttachment(filepath, "eticket.jpeg")
		})
	return g
}

func loyaltyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/points", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			balance, err := common.ActivePointsBalance(db, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var entries []models.PointEntry
			if err := db.
				Where(&models.PointEntry{UserID: userId}).
				Order("created_at desc").
				Limit(50).
				Find(&entries).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"balance": balance, "entries": entries})
		}).
		GET("/coupons", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var coupons []models.UserCoupon
			db := db.GetDb()
			if err := db.
				Where(&models.UserCoupon{UserID: userId}).
				Where("used_at IS NULL").
				Preload("Coupon").
				Find(&coupons).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupons, "count": len(coupons)})
		})
	return g
}
