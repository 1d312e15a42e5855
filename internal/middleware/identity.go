package middleware

// identity.go holds small helpers shared by the middleware in this
// package for identifying the caller of a request.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as stored by JWTAuth,
// or "anon" for unauthenticated requests.  Rate limit keys use it so
// logged-in users are limited per account rather than per IP.  The sub
// claim decodes from JSON as float64.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	}
	return "anon"
}
