package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds the page window of a list request
type Pagination struct {
	Page    int
	PerPage int
}

// GetPagination reads page/per_page query parameters, clamping per_page
// to the given maximum.
func GetPagination(c *gin.Context, defaultPerPage, maxPerPage int) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Pagination{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the page window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta builds the pagination block included in list responses.
func (p Pagination) Meta(total int64) map[string]interface{} {
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		pages++
	}
	return map[string]interface{}{
		"page":     p.Page,
		"per_page": p.PerPage,
		"total":    total,
		"pages":    pages,
		"has_next": p.Page < pages,
		"has_prev": p.Page > 1,
	}
}
