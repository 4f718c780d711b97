package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/handlers"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth       *handlers.AuthHandlers
	Properties *handlers.PropertyHandlers
	Bookings   *handlers.BookingHandlers
	Chat       http.Handler
}

func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if h.Chat != nil {
		r.GET("/ws", gin.WrapH(h.Chat))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/resend-otp", h.Auth.ResendOTP)
	auth.GET("/me", jwtmw.WithJWT(), h.Auth.Me)

	api.GET("/properties/public/search", h.Properties.Search)
	api.GET("/properties/:id", h.Properties.Get)

	// role-gated routes; policies live in casbin_rule
	v := api.Group("").Use(jwtmw.WithJWT(), cb.Enforce())
	v.POST("/properties", h.Properties.Create)
	v.GET("/properties/owner", h.Properties.Owner)
	v.POST("/bookings/request", h.Bookings.Request)
	v.GET("/bookings/my", h.Bookings.Mine)
	v.GET("/bookings/owner", h.Bookings.Owner)
	v.PUT("/bookings/:id/status", h.Bookings.Decide)
	v.GET("/owner/dashboard", h.Bookings.Dashboard)
	v.POST("/inquiries", h.Properties.Inquire)
	v.GET("/inquiries/owner", h.Properties.OwnerInquiries)

	return r
}
