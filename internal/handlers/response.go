package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

// respondError maps service errors onto HTTP status codes. Sentinel errors
// carry the status; anything unrecognized is a 500 with a generic message so
// internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pkgerrors.ErrInvalidArgument),
		errors.Is(err, wizard.ErrFullTemplateUnavailable),
		errors.Is(err, wizard.ErrNoQuestions),
		errors.Is(err, wizard.ErrBuilderNotStarted),
		errors.Is(err, wizard.ErrUnknownQuestion),
		errors.Is(err, wizard.ErrTypeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, pkgerrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
