// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/handler"
	"github.com/thms/theatre-management/internal/middleware"
	"github.com/thms/theatre-management/internal/model"
)

// RegisterRoutes registers routes that require no authentication on the
// provided Echo instance.  Currently it exposes only a health check used
// by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Unauthenticated
// operations live under /v1/auth; the protected /v1/me endpoint accepts
// any known role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/verify", a.VerifyOTP)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleUser))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: movie and
// theatre catalogs, the screening schedule, per-screening seat maps and
// the search endpoint.  Guests can inspect everything that does not
// involve an account.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/movies", p.ListMovies)
	g.GET("/movies/:id", p.GetMovie)
	g.GET("/genres", p.ListGenres)
	g.GET("/theatres", p.ListTheatres)
	g.GET("/theatres/:id", p.GetTheatre)
	g.GET("/screenings", p.ListScreenings)
	g.GET("/screenings/:id/seats", p.GetScreeningSeats)
	g.GET("/search/screenings", p.SearchScreenings)
}
