package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/services"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterRequest represents the registration request payload. The senha_hash
// field name is historical; the value is a plaintext secret that is hashed
// server side before storage.
type RegisterRequest struct {
	Name          string          `json:"nome" binding:"required,max=100"`
	Email         string          `json:"email" binding:"required,email,max=150"`
	Secret        string          `json:"senha_hash" binding:"required,max=128"`
	MonthlySalary decimal.Decimal `json:"salario_mensal" binding:"omitempty,gte=0"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"senha_hash" binding:"required"`
}

// UpdateUserRequest carries partial profile updates keyed by user id.
type UpdateUserRequest struct {
	ID            uint             `json:"id" binding:"required"`
	Name          *string          `json:"nome"`
	Email         *string          `json:"email" binding:"omitempty,email,max=150"`
	MonthlySalary *decimal.Decimal `json:"salario_mensal"`
}

// Register handles user registration
// @Summary     Register a new user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} map[string]interface{} "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate email"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Secret, req.MonthlySalary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário cadastrado com sucesso",
		"usuario": gin.H{
			"id":    user.ID,
			"nome":  user.Name,
			"email": user.Email,
		},
	})
}

// Login handles user login
// @Summary     Authenticate a user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User credentials"
// @Success     200 {object} map[string]interface{} "User authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Secret)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"usuario": gin.H{
			"id":    user.ID,
			"nome":  user.Name,
			"email": user.Email,
		},
	})
}

// GetInfo returns a user's profile
// @Summary     Get user profile
// @Tags        auth
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {object} map[string]interface{} "User profile"
// @Failure     400 {object} ErrorResponse "Missing user_id"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/info [get]
func (h *AuthHandler) GetInfo(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario": gin.H{
			"id":             user.ID,
			"nome":           user.Name,
			"email":          user.Email,
			"salario_mensal": user.MonthlySalary,
		},
	})
}

// UpdateUser applies a partial profile update
// @Summary     Update user profile
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "User updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/alterar [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(req.ID, services.UserUpdate{
		Name:          req.Name,
		Email:         req.Email,
		MonthlySalary: req.MonthlySalary,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuário atualizado com sucesso",
		"usuario": gin.H{
			"id":             user.ID,
			"nome":           user.Name,
			"email":          user.Email,
			"salario_mensal": user.MonthlySalary,
		},
	})
}

// DeleteUser removes a user and all owned records
// @Summary     Delete a user
// @Tags        auth
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} map[string]interface{} "User deleted"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/deletar/{user_id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.Delete(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário deletado com sucesso"})
}
