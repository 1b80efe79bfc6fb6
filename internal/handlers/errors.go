package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/reports"
	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

var (
	errSaleNotFound      = errors.New("sale not found")
	errComplaintNotFound = errors.New("complaint not found")
)

// errorStatus maps service and storage errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrMalformedBackup),
		errors.Is(err, services.ErrInvalidSaleTransition),
		errors.Is(err, services.ErrNoTickets),
		errors.Is(err, services.ErrResolutionNotesRequired),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, reports.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidAdminSecret),
		errors.Is(err, services.ErrPasswordNotSet):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPromoterNotFound),
		errors.Is(err, errSaleNotFound),
		errors.Is(err, errComplaintNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPasswordAlreadySet),
		errors.Is(err, services.ErrSaleAlreadyDecided),
		errors.Is(err, services.ErrComplaintAlreadyResolved),
		errors.Is(err, services.ErrComplaintNotResolved),
		errors.Is(err, repository.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, repository.ErrStorageFull):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

// respondError writes the error as {"error": "..."} with the mapped status
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

// bindJSON binds the request body and answers 400 on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
