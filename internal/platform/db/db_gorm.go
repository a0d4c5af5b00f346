package db

import (
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "nutrilens_backend/internal/feature/auth/adapters"
	authentity "nutrilens_backend/internal/feature/auth/domain/entity"
	mealentity "nutrilens_backend/internal/feature/meals/domain/entity"
)

// OpenDB connects to Postgres, retrying for up to 60 seconds while the
// database comes up. Fatal if it never does.
func OpenDB(databaseURL string, runMigrations bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if runMigrations {
		// マイグレーション（User, Session, MealRecord）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&mealentity.MealRecord{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
