package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lumapark/venue-booking/internal/checkout"
	"github.com/lumapark/venue-booking/internal/config"
	"github.com/lumapark/venue-booking/internal/database"
	"github.com/lumapark/venue-booking/internal/handler"
	"github.com/lumapark/venue-booking/internal/middleware"
	"github.com/lumapark/venue-booking/internal/queue"
	"github.com/lumapark/venue-booking/internal/repository"
	"github.com/lumapark/venue-booking/internal/router"
	"github.com/lumapark/venue-booking/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the session store, cache and rate limiter.  Without
	// it the flow still works on the in-memory store, minus caching
	// and rate limiting; that is fine for development.
	rdb := config.NewRedisClient()
	var kv store.Store
	if rdb != nil {
		kv = store.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, using in-memory session store")
		kv = store.NewMemoryStore()
	}

	eventRepo := repository.NewEventRepo(db)
	postRepo := repository.NewPostRepo(db)
	authorRepo := repository.NewAuthorRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	co := checkout.NewService(kv)

	browse := handler.NewBrowseHandler(eventRepo, postRepo, authorRepo)
	bookings := handler.NewBookingHandler(bookingRepo)
	reservations := handler.NewReservationHandler(kv, bookingRepo, co, cfg.PaymentBaseURL)
	carts := handler.NewCartHandler(kv, eventRepo)
	checkouts := handler.NewCheckoutHandler(co, eventRepo, bookingRepo, cfg.PaymentBaseURL)
	docs := handler.NewDocumentHandler(co)
	adminAuth := handler.NewAdminAuthHandler(cfg)
	adminEvents := handler.NewAdminEventHandler(eventRepo)
	adminPosts := handler.NewAdminPostHandler(postRepo)
	files := handler.NewFileHandler(cfg.UploadDir)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, browse, bookings, cache)
	router.RegisterBookingFlow(e, reservations, carts, checkouts, docs)
	router.RegisterAdmin(e, adminAuth, adminEvents, adminPosts, files, bookings, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
