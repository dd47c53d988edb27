package controllers

import (
	"net/http"
	"time"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	users        *services.UserService
	secret       string
	expiry       time.Duration
	cookieName   string
	secureCookie bool
}

func NewAuthController(users *services.UserService, secret string, expiry time.Duration, cookieName string, secureCookie bool) *AuthController {
	return &AuthController{
		users:        users,
		secret:       secret,
		expiry:       expiry,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// Login checks the credentials and issues a token in the body and an HttpOnly cookie
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgLoginFailed)
		return
	}

	user, err := ac.users.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgInternalError)
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), ac.secret, ac.expiry)
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgInternalError)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, token, int(ac.expiry.Seconds()), "/", "", ac.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, "", -1, "/", "", ac.secureCookie, true)
	utils.RespondWithMessage(c, http.StatusOK, utils.MsgLoggedOut)
}

// Me returns the authenticated user
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := ac.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgInternalError)
		return
	}
	c.JSON(http.StatusOK, user)
}
