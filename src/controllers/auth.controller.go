package controllers

import (
	"errors"
	"log"
	"net/http"

	"tiketku/src/common"
	"tiketku/src/db"
	"tiketku/src/models"
	"tiketku/src/types"
	"tiketku/src/utils"

	"github.com/gin-gonic/gin"
)

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err = db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}
	if !utils.VerifyPassword(user.Password, body.Password) {
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}

	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not sign token")
	}
	return &jwt, http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (user *models.User, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	created, err := common.RegisterUserWithReferral(&body)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return created, http.StatusCreated, nil
}
