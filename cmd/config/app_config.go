package config

import (
	"Moon-Trade-Backend/internal/api/handlers"
	"Moon-Trade-Backend/internal/api/routes"
	"Moon-Trade-Backend/internal/middleware"
	"Moon-Trade-Backend/internal/utils"
	"Moon-Trade-Backend/internal/utils/mailing"
	"Moon-Trade-Backend/pkg/coin"
	"Moon-Trade-Backend/pkg/exchange"
	"Moon-Trade-Backend/pkg/jwt"
	"Moon-Trade-Backend/pkg/plan"
	"Moon-Trade-Backend/pkg/transaction"
	"Moon-Trade-Backend/pkg/user"
	"Moon-Trade-Backend/pkg/wallet"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tokyo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	transactionRepository := transaction.NewTransactionRepository(db)
	coinRepository := coin.NewCoinRepository(db)
	planRepository := plan.NewPlanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, walletRepository, transactionRepository)
	transactionService := transaction.NewTransactionService(
		db,
		transactionRepository,
		walletRepository,
		userRepository,
		mailing.Sender{},
	)
	exchangeService := exchange.NewExchangeService(db, coinRepository)
	coinService := coin.NewCoinService(coinRepository)
	planService := plan.NewPlanService(planRepository, coinRepository, PlanLocation())

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	coinHandler := handlers.NewCoinHandler(coinService, validator)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validator)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService, validator)
	planHandler := handlers.NewPlanHandler(planService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		CoinHandler:        coinHandler,
		TransactionHandler: transactionHandler,
		ExchangeHandler:    exchangeHandler,
		PlanHandler:        planHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// PlanLocation resolves the reference timezone the daily plan applier
// uses to decide what "today" is.
func PlanLocation() *time.Location {
	name := utils.GetConfig("PLAN_TIMEZONE")
	if name == "" {
		name = "Asia/Tokyo"
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("invalid PLAN_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return location
}
