package handlers

import (
	"errors"
	"net/http"

	userRepo "skytrip/database/repository/user"
	"skytrip/middleware"
	"skytrip/services/user"
	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes registration, sign-in and profile endpoints.
type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// Register creates a new traveller profile.
func (h *UserHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.Register(c.Request.Context(), input.Name, input.Email, input.Phone, input.Password)
	if errors.Is(err, user.ErrEmailTaken) {
		utils.JSONError(c, http.StatusConflict, "email already registered", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and returns a session token.
func (h *UserHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	token, u, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Service.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if errors.Is(err, userRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "profile not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile overwrites the caller's name and phone.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), input.Name, input.Phone)
	if errors.Is(err, userRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "profile not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// AddCard saves a masked card on the caller's profile.
func (h *UserHandler) AddCard(c *gin.Context) {
	var input struct {
		HolderName  string `json:"holderName" binding:"required"`
		CardNumber  string `json:"cardNumber" binding:"required"`
		ExpMonth    int    `json:"expMonth" binding:"required,min=1,max=12"`
		ExpYear     int    `json:"expYear" binding:"required"`
		Nickname    string `json:"nickname"`
		MakeDefault bool   `json:"makeDefault"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.AddCard(c.Request.Context(), middleware.CurrentUserID(c), user.AddCardInput{
		HolderName:  input.HolderName,
		CardNumber:  input.CardNumber,
		ExpMonth:    input.ExpMonth,
		ExpYear:     input.ExpYear,
		Nickname:    input.Nickname,
		MakeDefault: input.MakeDefault,
	})
	if errors.Is(err, user.ErrTooManyCards) {
		utils.JSONError(c, http.StatusUnprocessableEntity, "card limit reached", err.Error())
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save card", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// RemoveCard deletes a saved card.
func (h *UserHandler) RemoveCard(c *gin.Context) {
	u, err := h.Service.RemoveCard(c.Request.Context(), middleware.CurrentUserID(c), c.Param("cardID"))
	if errors.Is(err, user.ErrCardNotFound) {
		utils.JSONError(c, http.StatusNotFound, "card not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove card", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetDefaultCard marks one saved card as the default.
func (h *UserHandler) SetDefaultCard(c *gin.Context) {
	u, err := h.Service.SetDefaultCard(c.Request.Context(), middleware.CurrentUserID(c), c.Param("cardID"))
	if errors.Is(err, user.ErrCardNotFound) {
		utils.JSONError(c, http.StatusNotFound, "card not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to set default card", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}
