package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	pkgutils "github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// ParsePagination reads limit and offset query parameters, falling back
// to defaults on absent or unparseable values.
func ParsePagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}
	return pkgutils.ValidateLimit(limit), pkgutils.ValidateOffset(offset)
}
