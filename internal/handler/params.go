package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasar-api/internal/utils"
)

// paramInt parses an integer path parameter, writing the error response on
// failure.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return v, true
}
