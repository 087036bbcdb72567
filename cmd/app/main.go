package main

import (
	"Moon-Trade-Backend/cmd/config"
	migration "Moon-Trade-Backend/cmd/database/migrate"
	"Moon-Trade-Backend/internal/utils"
	"Moon-Trade-Backend/pkg/coin"
	"Moon-Trade-Backend/pkg/plan"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	coinRepository := coin.NewCoinRepository(db)
	coinService := coin.NewCoinService(coinRepository)
	if err := coinService.Seed(context.Background()); err != nil {
		log.Fatalf("error seeding coins: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	planRepository := plan.NewPlanRepository(db)
	planService := plan.NewPlanService(planRepository, coinRepository, config.PlanLocation())
	scheduler := plan.NewScheduler(planService, planInterval())
	scheduler.Start()
	defer scheduler.Stop()

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func planInterval() time.Duration {
	minutes, err := strconv.Atoi(utils.GetConfig("PLAN_INTERVAL_MINUTES"))
	if err != nil || minutes <= 0 {
		return time.Hour
	}
	return time.Duration(minutes) * time.Minute
}
