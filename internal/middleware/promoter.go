package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/models"
	"promoter-service/internal/services"
)

// PromoterPasswordHeader carries the promoter's password on self-service calls
const PromoterPasswordHeader = "X-Promoter-Password"

// PromoterContextKey is where the authenticated promoter is stored
const PromoterContextKey = "promoter"

// PromoterAuthenticator checks a promoter's password
type PromoterAuthenticator interface {
	Login(ctx context.Context, id string, password string) (*models.Promoter, error)
}

// RequirePromoterPassword authenticates the promoter named by the :id path
// parameter against the X-Promoter-Password header.
func RequirePromoterPassword(auth PromoterAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		promoterID := c.Param("id")
		password := c.GetHeader(PromoterPasswordHeader)
		if password == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": PromoterPasswordHeader + " header is required"})
			c.Abort()
			return
		}

		promoter, err := auth.Login(c.Request.Context(), promoterID, password)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, services.ErrPromoterNotFound):
				status = http.StatusNotFound
			case errors.Is(err, services.ErrPasswordNotSet):
				status = http.StatusForbidden
			case errors.Is(err, services.ErrInvalidPassword):
				status = http.StatusUnauthorized
			}
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(PromoterContextKey, promoter)
		c.Next()
	}
}

// CurrentPromoter returns the promoter set by RequirePromoterPassword
func CurrentPromoter(c *gin.Context) (*models.Promoter, bool) {
	value, ok := c.Get(PromoterContextKey)
	if !ok {
		return nil, false
	}
	promoter, ok := value.(*models.Promoter)
	return promoter, ok
}
