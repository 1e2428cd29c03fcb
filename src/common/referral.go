package common

import (
	"errors"
	"fmt"
	"log"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"
	"tiketku/src/utils"

	"gorm.io/gorm"
)

// ensureWelcomeCoupon finds or creates the standing welcome coupon
// newly referred users are granted.
func ensureWelcomeCoupon(tx *gorm.DB) (*models.Coupon, error) {
	var coupon models.Coupon
	err := tx.Where(&models.Coupon{Code: config.WelcomeCouponCode}).First(&coupon).Error
	if err == nil {
		return &coupon, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	now := time.Now()
	description := "Welcome discount for new members"
	coupon = models.Coupon{
		Code:          config.WelcomeCouponCode,
		Description:   &description,
		DiscountType:  types.DISCOUNT_PERCENTAGE,
		DiscountValue: 10,
		MinPurchase:   0,
		ValidFrom:     now,
		ValidUntil:    now.AddDate(0, 0, config.WelcomeCouponDays),
		IsActive:      true,
	}
	if err := tx.Create(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// RegisterUserWithReferral creates the account and, when a referral
// code is presented, pays the referrer their bonus and hands the new
// user a welcome coupon. All of it commits together.
func RegisterUserWithReferral(body *types.RegisterUserRequestBody) (*models.User, error) {
	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, err
	}
	role := types.ROLE_CUSTOMER
	if body.Role != "" {
		role = types.UserRole(body.Role)
	}
	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		Password:     hashed,
		Role:         role,
		ReferralCode: utils.GenerateReferralCode(body.Name),
	}

	gdb := db.GetDb()
	var welcomeCode string
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.
			Model(&models.User{}).
			Select("id").
			Where("email = ?", body.Email).
			First(&existing).
			Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("could not complete transaction")
			}
		}
		if existing.ID > 0 {
			return errors.New("user is already registered in the system. Please proceed to Log In")
		}

		var referrer *models.User
		if body.ReferralCode != "" {
			var found models.User
			if err := tx.
				Where(&models.User{ReferralCode: body.ReferralCode}).
				First(&found).
				Error; err != nil {
				return errors.New("referral code is not valid")
			}
			referrer = &found
			user.ReferredByID = &found.ID
		}

		if err := tx.Create(&user).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return fmt.Errorf("error creating user: %s", body.Email)
		}

		if referrer != nil {
			expiry := PointExpiry(time.Now())
			entry := models.PointEntry{
				UserID:      referrer.ID,
				Amount:      config.ReferralBonusPoints,
				Kind:        types.POINTS_EARNED_REFERRAL,
				Description: fmt.Sprintf("Referral bonus for inviting %s", user.Email),
				ExpiresAt:   &expiry,
			}
			if err := AppendPointEntry(tx, &entry); err != nil {
				return err
			}

			coupon, err := ensureWelcomeCoupon(tx)
			if err != nil {
				return err
			}
			welcomeCode = coupon.Code
			uc := models.UserCoupon{
				UserID:   user.ID,
				CouponID: coupon.ID,
			}
			if err := tx.Create(&uc).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	NotifyWelcome(&user, welcomeCode)
	return &user, nil
}
