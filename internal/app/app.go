package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Debmalya06/Mess-Milega-sub000/internal/chathub"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/config"
	httpx "github.com/Debmalya06/Mess-Milega-sub000/internal/http"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/handlers"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/auth"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/database"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/notifications"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/repositories"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/services"
)

// Server is the assembled development backend
type Server struct {
	DB      *gorm.DB
	Redis   *database.RedisClient
	Hub     *chathub.Hub
	Handler http.Handler
}

// NewServer opens storage, seeds policies and builds the router
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		closeDB(gdb)
		return nil, err
	}
	cas, err := auth.NewCasbinService(gdb)
	if err != nil {
		closeDB(gdb)
		return nil, err
	}
	rdb, err := database.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		closeDB(gdb)
		return nil, err
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	if !notificationSvc.Enabled() {
		log.Printf("TWILIO_DISABLED: codes are written to the log")
	}

	accounts := repositories.NewAccountRepository(gdb)
	properties := repositories.NewPropertyRepository(gdb)
	bookings := repositories.NewBookingRepository(gdb)
	inquiries := repositories.NewInquiryRepository(gdb)

	otpSvc := services.NewOTPService(notificationSvc, accounts, rdb.Client, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	authSvc := services.NewAuthService(accounts, passwordSvc, tokenSvc, otpSvc)
	policySvc := services.NewPolicyService(cas.E)
	bookingSvc := services.NewBookingService(properties, bookings, accounts, time.Now)
	listingSvc := services.NewListingService(properties, inquiries, accounts)

	hub := chathub.NewHub(tokenSvc)
	router := httpx.BuildRouter(httpx.Handlers{
		Auth:       handlers.NewAuthHandlers(authSvc),
		Properties: handlers.NewPropertyHandlers(listingSvc),
		Bookings:   handlers.NewBookingHandlers(bookingSvc),
		Chat:       hub.Handler(),
	}, middleware.NewAuthMW(tokenSvc), middleware.NewCasbinMW(policySvc))

	policies := policySvc.GetPolicies()
	log.Printf("SERVER_READY: policies=%d redis_embedded=%t", len(policies), rdb.Embedded())

	return &Server{DB: gdb, Redis: rdb, Hub: hub, Handler: router}, nil
}

// Close releases the database and redis connections
func (s *Server) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Run serves the development backend until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config) error {
	srv, err := NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Printf("SERVER_SHUTDOWN: reason=%v", ctx.Err())
	return httpSrv.Shutdown(shutdownCtx)
}
