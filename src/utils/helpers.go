package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"tiketku/src/config"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"github.com/yeqown/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func GenerateJWT(email string, userId uint, role types.UserRole) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GenerateReferralCode builds a short shareable code from the user's
// name plus random bytes, e.g. "JOHN-3F2A9C".
func GenerateReferralCode(name string) string {
	b := make([]byte, 3)
	rand.Read(b)
	prefix := strings.ToUpper(slug.Make(name))
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if prefix == "" {
		prefix = "USER"
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(b)))
}

func CreateNewEvent(params *types.CreateEventRequestBody, organizerId uint) (uint, error) {
	startDate, err := time.Parse(config.TIME_PARSE_FORMAT, params.StartDate)
	if err != nil {
		log.Printf("Error parsing start_date: %s\n", err.Error())
		return 0, err
	}
	endDate, err := time.Parse(config.TIME_PARSE_FORMAT, params.EndDate)
	if err != nil {
		log.Printf("Error parsing end_date: %s\n", err.Error())
		return 0, err
	}
	event := models.Event{
		Title:       params.Title,
		Slug:        fmt.Sprintf("%s-%d", slug.Make(params.Title), time.Now().Unix()),
		Location:    params.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		IsFree:      params.IsFree,
		OrganizerID: organizerId,
	}
	if params.Description != "" {
		event.Description = &params.Description
	}
	if params.Thumbnail != "" {
		event.Thumbnail = &params.Thumbnail
	}
	if params.CategoryID > 0 {
		event.CategoryID = &params.CategoryID
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		if params.CategoryID > 0 {
			var category models.Category
			if err := tx.Where(&models.Category{ID: params.CategoryID}).First(&category).Error; err != nil {
				return fmt.Errorf("category %d does not exist", params.CategoryID)
			}
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return event.ID, nil
}

func CreateNewTicketType(params *types.CreateTicketTypeRequestBody, organizerId uint) (uint, error) {
	ticketType := models.TicketType{
		EventID:   params.EventID,
		Name:      params.Name,
		Price:     params.Price,
		Total:     params.Total,
		Available: params.Total,
	}
	if params.Description != "" {
		ticketType.Description = &params.Description
	}

	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: params.EventID, OrganizerID: organizerId}).
			First(&event).
			Error; err != nil {
			return fmt.Errorf("event %d does not exist", params.EventID)
		}
		if event.IsFree && params.Price > 0 {
			return fmt.Errorf("event %d is free and cannot carry priced tickets", params.EventID)
		}
		if err := tx.Create(&ticketType).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Println("Error: ", err.Error())
		return 0, err
	}
	return ticketType.ID, nil
}

// GenerateTicketQR encrypts the ticket code and renders it as a QR
// image under TEMP_DIR. Returns the file path for attachment.
func GenerateTicketQR(code string) (string, error) {
	keyEnv := os.Getenv("API_QRC_SECRET")
	key, err := hex.DecodeString(keyEnv)
	if err != nil {
		log.Printf("Could not read key from string: %s\n", err.Error())
		return "", err
	}
	encryptedMessage, err := EncryptMessage(key, code)
	if err != nil {
		log.Printf("Error encrypting message: %s\n", err.Error())
		return "", err
	}
	qrc, err := qrcode.New(encryptedMessage)
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	filepath := path.Join(tempdir, fmt.Sprintf("%s.jpeg", code))
	if err = qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	encodedString := hex.EncodeToString(cipherText)

	return encodedString, nil
}

func DecryptMessage(key []byte, message string) (*string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	decodedString := string(decryptedData)

	return &decodedString, nil
}
