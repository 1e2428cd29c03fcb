package boot

import (
	"log"
	"time"

	"tiketku/src/common"
	"tiketku/src/db"
	"tiketku/src/lib"
	"tiketku/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.TicketType{},
		&models.Transaction{},
		&models.TransactionTicket{},
		&models.PointEntry{},
		&models.Coupon{},
		&models.UserCoupon{},
		&models.Voucher{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler wires the two background sweeps: overdue orders expire
// every minute, expired points fall off once a day.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob(common.ExpireOverdueTransactions, 1*time.Minute); err != nil {
		log.Printf("Error scheduling transaction expiry sweep: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(common.ReconcileExpiredPoints, 24*time.Hour); err != nil {
		log.Printf("Error scheduling point expiry sweep: %s\n", err.Error())
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
