package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated user's id stored by the auth
// middleware. The middleware sets a uint, but tolerate the other numeric
// types a JWT round-trip can produce.
func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
