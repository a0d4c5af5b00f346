package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analysisusecase "nutrilens_backend/internal/feature/analysis/usecase"
	authadapters "nutrilens_backend/internal/feature/auth/adapters"
	"nutrilens_backend/internal/feature/auth/usecase"
	"nutrilens_backend/internal/platform/quota"
	"nutrilens_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to Postgres.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionPostgres(db)
}

// NewScanCounter creates a ScanCounter implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the scan_count column on the users table.
func NewScanCounter(rdb *redis.Client, db *gorm.DB) analysisusecase.ScanCounter {
	if rdb != nil {
		return quota.NewScanCounterRedis(rdb, "scans")
	}
	return quota.NewScanCounterGorm(db)
}
