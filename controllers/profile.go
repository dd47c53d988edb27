package controllers

import (
	"net/http"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateProfileInput only changes the fields that are sent non-empty
type UpdateProfileInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email" binding:"omitempty,email"`
	ProfileImageURL string `json:"profileImageUrl"`
	Password        string `json:"password"`
}

type CreateUserInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUserInvalid)
		return
	}

	user, err := uc.users.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		ProfileImageURL: input.ProfileImageURL,
		Password:        input.Password,
	})
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgProfileUpdateFail)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgUsersFetchFail)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUserInvalid)
		return
	}

	user, err := uc.users.Create(c.Request.Context(), services.UserInput{
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	})
	if err != nil {
		respondServiceError(c, err, utils.MsgUserNotFound, utils.MsgUserCreateFail)
		return
	}
	c.JSON(http.StatusCreated, user)
}
