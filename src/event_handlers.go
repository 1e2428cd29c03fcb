package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/lib"
	"tiketku/src/models"
	"tiketku/src/types"
	"tiketku/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const eventsCacheKey = "events:upcoming"

func publicEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var filters types.EventsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var events []models.Event
			unfiltered := filters.Search == "" && filters.Category == 0
			if unfiltered && lib.GetCachedJSON(ctx, eventsCacheKey, &events) {
				ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
				return
			}
			db := db.GetDb()
			q := db.
				Model(&models.Event{}).
				Preload("TicketTypes").
				Preload("Category").
				Where("end_date > ?", time.Now()).
				Order("start_date asc").
				Limit(50)
			if filters.Search != "" {
				q = q.Where("title ILIKE ?", fmt.Sprintf("%%%s%%", filters.Search))
			}
			if filters.Category > 0 {
				q = q.Where("category_id = ?", filters.Category)
			}
			if err := q.Find(&events).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if unfiltered {
				lib.CacheJSON(ctx, eventsCacheKey, events, 5*time.Minute)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			db := db.GetDb()
			err := db.
				Model(&models.Event{}).
				Where(&models.Event{ID: params.ID}).
				Preload("TicketTypes").
				Preload("Category").
				Preload("Vouchers", "is_active = ? AND valid_until > ?", true, time.Now()).
				First(&event).
				Error
			if err != nil {
				log.Printf("Error finding event %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/categories", func(ctx *gin.Context) {
			var categories []models.Category
			db := db.GetDb()
			if err := db.Order("name asc").Find(&categories).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories})
		})
	return g
}

func organizerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			id, err := utils.CreateNewEvent(&body, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateCache(context.Background(), eventsCacheKey)
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		GET("/events/own", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var events []models.Event
			db := db.GetDb()
			if err := db.
				Where(&models.Event{OrganizerID: userId}).
				Preload("TicketTypes").
				Order("created_at desc").
				Find(&events).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		POST("/ticket-types", func(ctx *gin.Context) {
			var body types.CreateTicketTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			id, err := utils.CreateNewTicketType(&body, userId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateCache(context.Background(), eventsCacheKey)
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		POST("/vouchers", func(ctx *gin.Context) {
			var body types.CreateVoucherRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
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
			voucher := models.Voucher{
				EventID:       body.EventID,
				Code:          slug.Make(body.Code),
				DiscountType:  types.DiscountType(body.DiscountType),
				DiscountValue: body.DiscountValue,
				MinPurchase:   body.MinPurchase,
				MaxUses:       body.MaxUses,
				ValidFrom:     validFrom,
				ValidUntil:    validUntil,
				IsActive:      true,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var event models.Event
				if err := tx.
					Where(&models.Event{ID: body.EventID, OrganizerID: userId}).
					First(&event).
					Error; err != nil {
					return errors.New("event does not exist")
				}
				return tx.Create(&voucher).Error
			}); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": voucher.ID})
		}).
		GET("/events/:id/transactions", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var event models.Event
			if err := db.
				Where(&models.Event{ID: params.ID, OrganizerID: userId}).
				Preload("TicketTypes").
				First(&event).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "event does not exist"})
				return
			}
			var transactions []models.Transaction
			if err := db.
				Where(&models.Transaction{EventID: event.ID}).
				Preload("Tickets").
				Order("created_at desc").
				Find(&transactions).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			seatsSold := 0
			for i := range event.TicketTypes {
				seatsSold += event.TicketTypes[i].Sold()
			}
			ctx.JSON(http.StatusOK, gin.H{"data": transactions, "count": len(transactions), "seats_sold": seatsSold})
		}).
		GET("/events/:id/vouchers", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			var vouchers []models.Voucher
			db := db.GetDb()
			if err := db.
				Joins("Event").
				Where(&models.Voucher{EventID: params.ID}).
				Where("\"Event\".organizer_id = ?", userId).
				Find(&vouchers).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vouchers, "count": len(vouchers)})
		})
	return g
}
