package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"tripdeck/catalog"
	"tripdeck/config"
	"tripdeck/db"
	"tripdeck/globals"
	"tripdeck/itinerary"
	"tripdeck/live"
	"tripdeck/models"
	"tripdeck/quote"
	"tripdeck/ratelim"
	"tripdeck/rdx"
	"tripdeck/routes"
	"tripdeck/session"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// Quotes carry prices; never cache them
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// openLoader picks the inventory source named by the config. The returned
// cleanup closes whatever connection it opened.
func openLoader(ctx context.Context, cfg config.Config) (catalog.Loader, func(), error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		sqlDB, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresLoader(sqlDB), func() { sqlDB.Close() }, nil
	case config.SourceMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewMongoLoader(client.Database(cfg.MongoDB)), func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(ctx)
		}, nil
	default:
		return catalog.FileLoader{Path: cfg.CatalogFile}, func() {}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	if cfg.JWTSecret != "" {
		globals.JwtSecret = []byte(cfg.JWTSecret)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, closeSource, err := openLoader(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Catalog source: %v", err)
	}
	defer closeSource()

	// Redis is optional: it adds the catalog cache and cross-instance refresh.
	var conn *redis.Client
	if cfg.RedisAddr != "" {
		conn, err = rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, continuing without cache: %v", err)
			conn = nil
		} else {
			defer conn.Close()
			loader = catalog.NewCachedLoader(loader, conn, cfg.Destination, cfg.CacheTTL)
		}
	}

	store := catalog.NewStore()
	if _, err := store.Reload(ctx, loader); err != nil {
		// Keep serving with an empty snapshot; a later refresh can fill it.
		log.Printf("❌ Initial catalog load failed: %v", err)
	}

	hub := live.NewHub()
	go hub.Run()

	refresher := &catalog.Refresher{
		Store:  store,
		Loader: loader,
		Conn:   conn,
		OnSwap: func(c *models.Catalog) {
			hub.Publish(live.CatalogRoom, live.ActionCatalogRefreshed, map[string]int{
				"cities":   len(c.HotelData),
				"packages": len(c.Packages),
			})
		},
	}
	go refresher.Run(ctx)

	sessions := session.NewStore()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(cfg.SessionIdle); n > 0 {
					log.Printf("🧹 Dropped %d idle sessions", n)
				}
			}
		}
	}()

	h := &itinerary.Handler{
		Catalog:       store,
		Sessions:      sessions,
		Refresher:     refresher,
		Hub:           hub,
		Images:        quote.HTTPImages{},
		Destination:   cfg.Destination,
		ShareBaseURL:  cfg.ShareBaseURL,
		EstimateRates: cfg.EstimateRates,
	}

	router := httprouter.New()
	routes.RoutesWrapper(router, h, ratelim.NewRateLimiter(cfg.PDFPerMin, 2))

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down live hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
