package common

import (
	"fmt"

	"tiketku/src/lib"
	"tiketku/src/lib/mailer"
	"tiketku/src/models"
)

func NotifyConfirmation(txn *models.Transaction) {
	mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{txn.User.Email},
		Subject: fmt.Sprintf("Payment confirmed for %s", txn.Event.Title),
		Body:    mailer.ConfirmationBody(txn.User.Name, txn.Event.Title, txn.FinalAmount, RewardPoints(txn.FinalAmount)),
		Html:    true,
	})
}

func NotifyRejection(txn *models.Transaction, reason string) {
	mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{txn.User.Email},
		Subject: fmt.Sprintf("Payment rejected for %s", txn.Event.Title),
		Body:    mailer.RejectionBody(txn.User.Name, txn.Event.Title, reason),
		Html:    true,
	})
}

func NotifyExpiry(txn *models.Transaction) {
	mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{txn.User.Email},
		Subject: fmt.Sprintf("Order expired for %s", txn.Event.Title),
		Body:    mailer.ExpiryBody(txn.User.Name, txn.Event.Title),
		Html:    true,
	})
}

func NotifyWelcome(user *models.User, couponCode string) {
	mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{user.Email},
		Subject: "Welcome to Tiketku",
		Body:    mailer.WelcomeBody(user.Name, couponCode, user.ReferralCode),
		Html:    true,
	})
}
