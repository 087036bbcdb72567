package migration

import (
	"Moon-Trade-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Profile{}); err != nil {
		log.Fatalf("Error migrating profiles: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Coin{}); err != nil {
		log.Fatalf("Error migrating coins: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PriceHistory{}); err != nil {
		log.Fatalf("Error migrating price history: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Balance{}); err != nil {
		log.Fatalf("Error migrating balances: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transactions: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Plan{}); err != nil {
		log.Fatalf("Error migrating plans: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PlanRun{}); err != nil {
		log.Fatalf("Error migrating plan runs: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
