// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventmate/ticketing/internal/handler"
	"github.com/eventmate/ticketing/internal/middleware"
)

// RegisterHealth registers the liveness endpoint used by load
// balancers and monitoring.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Register, login and
// the token exchanges live under /v1/auth and need no session; the OTP
// routes additionally go through the rate limiter so a 6-digit code
// cannot be brute forced within its window.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	g.POST("/otp/request", a.OtpRequest, limiter)
	g.POST("/otp/login", a.OtpLogin, limiter)
	g.POST("/password/reset", a.PasswordReset, limiter)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog routes. The
// event list and detail sit behind the response cache; booked seats do
// not, because clients pick seats from that response and staleness
// would only manufacture reservation conflicts.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, b *handler.BookingHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/events", ev.List, cache)
	e.GET("/v1/events/:id", ev.Get, cache)
	e.GET("/v1/events/:id/booked-seats", b.BookedSeats)
}

// RegisterBookings registers the authenticated booking routes. Any
// authenticated role may book; creation is rate limited.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("CUSTOMER", "ORGANIZER", "ADMIN"))
	g.POST("", b.Create, limiter)
	g.GET("", b.List)
	g.GET("/:id", b.Get)
	g.POST("/:id/confirm", b.Confirm)
}
