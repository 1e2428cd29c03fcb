package main

import (
	"net/http"
	"time"

	"tiketku/src/common"
	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/transactions", func(ctx *gin.Context) {
			var filters types.TransactionsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status := filters.Status
			if status == "" {
				status = string(types.TRANSACTION_WAITING_CONFIRMATION)
			}
			var transactions []models.Transaction
			db := db.GetDb()
			if err := db.
				Where("status = ?", status).
				Preload("User").
				Preload("Event").
				Preload("Tickets").
				Order("created_at asc").
				Find(&transactions).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": transactions, "count": len(transactions)})
		}).
		POST("/admin/transactions/:id/confirm", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			txn, err := common.ConfirmTransaction(uuid.MustParse(params.ID), adminId)
			if err != nil {
				settlementErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/admin/transactions/:id/reject", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.RejectTransactionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			txn, err := common.RejectTransaction(uuid.MustParse(params.ID), adminId, body.Reason)
			if err != nil {
				settlementErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/admin/coupons", func(ctx *gin.Context) {
			var body types.CreateCouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			validFrom, err := time.Parse(config.TIME_PARSE_FORMAT, body.ValidFrom)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			validUntil, err := time.Parse(config.TIME_PARSE_FORMAT, body.ValidUntil)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon := models.Coupon{
				Code:          slug.Make(body.Code),
				DiscountType:  types.DiscountType(body.DiscountType),
				DiscountValue: body.DiscountValue,
				MaxDiscount:   body.MaxDiscount,
				MinPurchase:   body.MinPurchase,
				ValidFrom:     validFrom,
				ValidUntil:    validUntil,
				IsActive:      true,
			}
			if body.Description != "" {
				coupon.Description = &body.Description
			}
			db := db.GetDb()
			if err := db.Create(&coupon).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": coupon.ID})
		}).
		POST("/admin/coupons/:id/assign", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AssignCouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var coupon models.Coupon
			if err := db.Where(&models.Coupon{ID: params.ID}).First(&coupon).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "coupon does not exist"})
				return
			}
			var user models.User
			if err := db.Where(&models.User{ID: body.UserID}).First(&user).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user does not exist"})
				return
			}
			uc := models.UserCoupon{UserID: user.ID, CouponID: coupon.ID}
			if err := db.Create(&uc).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": uc.ID})
		})
	return g
}
