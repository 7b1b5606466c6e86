package handlers

import (
	"errors"
	"net/http"

	"pharmapos/internal/auth"
	"pharmapos/internal/config"
	"pharmapos/internal/pos"
	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles everything the routes need. Explicit dependencies
// instead of package globals keep mutation rights visible at the call
// sites.
type Handler struct {
	DB     *gorm.DB
	Engine *pos.Engine
	Tokens *auth.Tokens
	Config *config.Config
}

func New(db *gorm.DB, engine *pos.Engine, tokens *auth.Tokens, cfg *config.Config) *Handler {
	return &Handler{DB: db, Engine: engine, Tokens: tokens, Config: cfg}
}

// fail translates the domain error taxonomy into HTTP responses.
// Every failure in the taxonomy is recoverable; only unexpected
// errors become 500s.
func fail(c *gin.Context, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateItemID),
		errors.Is(err, store.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrOutOfStock),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInsufficientPayment),
		errors.Is(err, store.ErrLastUserDeletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
