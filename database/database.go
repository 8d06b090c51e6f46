package database

import (
	"log"
	"os"

	"restoration-app/internal/domain/billing"
	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/reports"
	"restoration-app/internal/domain/users"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// AddonLedgerAvailable is resolved once at startup. When false the addon
// reconciler runs in degraded mode: no idempotency rows, duplicate protection
// falls back to a time-window heuristic.
var AddonLedgerAvailable bool

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&plans.Plan{},
		&reports.Report{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	// The addon ledger migrates separately: a restricted DB user may not be
	// allowed to create it, and the service still has to come up.
	if err := DB.AutoMigrate(&billing.AddonPurchase{}); err != nil {
		zlog.Error().Err(err).Msg("addon_purchases migration failed, reconciler running in DEGRADED mode")
	}
	AddonLedgerAvailable = DB.Migrator().HasTable(&billing.AddonPurchase{})
	if !AddonLedgerAvailable {
		zlog.Error().Msg("addon_purchases table unavailable: duplicate-purchase protection reduced to time-window heuristic")
	}

	log.Println("Connected and migrated successfully")
}
