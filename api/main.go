package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	"github.com/rogerio-castellano/pantry-tracker/internal/config"
	"github.com/rogerio-castellano/pantry-tracker/internal/db"
	router "github.com/rogerio-castellano/pantry-tracker/internal/http"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/alert"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pantry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
)

// @title Pantry Tracker API
// @version 1.0
// @description REST API for tracking perishable products and consumption events against them.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	auth.SetSecret(cfg.JWTSecret)
	handlers.SetLedgerCacheTTL(cfg.LedgerCacheTTL)

	go auth.StartRefreshTokenCleaner(cfg.RefreshInterval)
	go alert.StartDailySummary(time.Hour * 24)
	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)
	alert.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	handlers.SetProductRepo(productRepo)
	handlers.SetConsumptionRepo(repo.NewPostgresConsumptionRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))

	go alert.StartExpiryScan(productRepo, time.Hour)

	r := router.NewRouter()
	log.Println("✅ Server running on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
