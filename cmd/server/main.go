package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/config"
	"github.com/thms/theatre-management/internal/database"
	"github.com/thms/theatre-management/internal/handler"
	"github.com/thms/theatre-management/internal/middleware"
	"github.com/thms/theatre-management/internal/queue"
	"github.com/thms/theatre-management/internal/repository"
	"github.com/thms/theatre-management/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: time.Duration(cfg.DBConnLifeMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	movieRepo := repository.NewMovieRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	theatreRepo := repository.NewTheatreRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	screeningRepo := repository.NewScreeningRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	var otpStore *repository.OTPStore
	if rdb != nil {
		otpStore = repository.NewOTPStore(rdb)
	}

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo, otpStore)
	adminHandler := handler.NewAdminHandler(movieRepo, genreRepo, theatreRepo, seatRepo, screeningRepo, bookingRepo)
	customerHandler := handler.NewCustomerHandler(movieRepo, theatreRepo, seatRepo, screeningRepo, bookingRepo)
	publicHandler := &handler.PublicHandler{
		MovieRepo:     movieRepo,
		GenreRepo:     genreRepo,
		TheatreRepo:   theatreRepo,
		SeatRepo:      seatRepo,
		ScreeningRepo: screeningRepo,
		BookingRepo:   bookingRepo,
	}

	e := echo.New()
	e.HideBanner = true
	// The limiter runs before JWT auth, so identity is not available yet
	// and the default key strategy effectively limits per IP and route.
	// User-keyed strategies require installing the limiter on a group
	// behind JWTAuth instead.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Booking events are consumed in the background; the consumer keeps
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Revoked and expired refresh tokens pile up; sweep them daily.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := tokenRepo.PurgeExpired(context.Background(), 24*time.Hour)
			if err != nil {
				log.Printf("token purge: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("token purge: removed %d expired tokens", n)
			}
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
