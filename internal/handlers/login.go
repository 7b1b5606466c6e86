package handlers

import (
	"net/http"

	"pharmapos/internal/models"
	"pharmapos/internal/store"
	"pharmapos/pkg/logger"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login matches credentials against the user store and hands back a
// session token.
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := store.Authenticate(h.DB, input.Username, input.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := h.Tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login")

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"role":      user.Role,
		"username":  user.Username,
		"full_name": user.FullName,
	})
}

// Register only exists when ALLOW_REGISTRATION=true; it creates a
// Cashier account from bare credentials.
func (h *Handler) Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := store.CreateUser(h.DB, store.UserInput{
		Username: input.Username,
		Password: input.Password,
		FullName: input.Username,
		Role:     models.RoleCashier,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
