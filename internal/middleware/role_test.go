package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	handler := RequireRole("ADMIN", "MANAGER")(next)

	cases := []struct {
		name string
		role any
		want int
	}{
		{"admin allowed", "ADMIN", http.StatusOK},
		{"manager allowed", "MANAGER", http.StatusOK},
		{"user forbidden", "USER", http.StatusForbidden},
		{"missing role forbidden", nil, http.StatusForbidden},
		{"non-string role forbidden", 42, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			require.NoError(t, handler(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
