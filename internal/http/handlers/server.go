package handlers

import (
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/locker"
	"github.com/rogerio-castellano/pantry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
)

var (
	productRepo     repo.ProductRepository
	consumptionRepo repo.ConsumptionRepository
	metricsRepo     repo.MetricsRepository
	userRepo        repo.UserRepository

	// productLocks serializes the validate-then-persist sequence per product;
	// see internal/locker.
	productLocks = locker.New()

	redisSvc       *redissvc.RedisService
	ledgerCacheTTL = 30 * time.Second
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetConsumptionRepo(r repo.ConsumptionRepository) {
	consumptionRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	redisSvc = rs
}

func SetLedgerCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		ledgerCacheTTL = ttl
	}
}
