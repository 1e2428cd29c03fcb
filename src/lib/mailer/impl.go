package mailer

import (
	"fmt"
	"log"
	"os"

	"tiketku/src/lib"
)

// NewMailerMessage sends asynchronously so settlement never blocks on SMTP.
func NewMailerMessage(input *lib.SendMailInput) {
	if input.From == "" {
		input.From = os.Getenv("EMAIL_FROM")
	}
	if input.FromName == "" {
		input.FromName = os.Getenv("EMAIL_FROM_NAME")
	}
	go func() {
		if err := lib.SendMail(input); err != nil {
			log.Printf("Error sending email to %v: %s\n", input.To, err.Error())
		}
	}()
}

func ConfirmationBody(name, eventTitle string, finalAmount, pointsEarned int) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment for <b>%s</b> has been confirmed.</p><p>Amount paid: Rp%d<br/>Points earned: %d</p><p>See you at the event!</p>",
		name, eventTitle, finalAmount, pointsEarned,
	)
}

func RejectionBody(name, eventTitle, reason string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment for <b>%s</b> was rejected.</p><p>Reason: %s</p><p>Any points or seats held by this order have been released back to you.</p>",
		name, eventTitle, reason,
	)
}

func ExpiryBody(name, eventTitle string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order for <b>%s</b> expired because no payment proof was uploaded before the deadline.</p><p>Any points used have been restored.</p>",
		name, eventTitle,
	)
}

func WelcomeBody(name, couponCode, referralCode string) string {
	couponLine := ""
	if couponCode != "" {
		couponLine = fmt.Sprintf("<p>Your welcome coupon: <b>%s</b></p>", couponCode)
	}
	return fmt.Sprintf(
		"<p>Hi %s, welcome aboard!</p>%s<p>Share your referral code <b>%s</b> with friends to earn points.</p>",
		name, couponLine, referralCode,
	)
}
