package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/utils"
)

// parseIDParam parses a UUID path parameter, answering 400 itself when
// the value is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// paginationFromQuery reads page/limit query parameters with the
// storefront defaults.
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecases.DefaultPageLimit)))
	if limit > usecases.MaxPageLimit {
		limit = usecases.MaxPageLimit
	}
	return utils.GetPaginationParams(page, limit)
}
