package httputil

import (
	"net/http"

	custom_error "github.com/YC815/Miaoli/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RespondError maps the ledger's typed failures onto HTTP statuses.
func RespondError(c *gin.Context, err error) {
	switch err.(type) {
	case *custom_error.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.InsufficientStockError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *custom_error.PersistenceError:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Storage unavailable", "details": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
