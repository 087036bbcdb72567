package routes

import (
	"Moon-Trade-Backend/internal/api/handlers"
	"Moon-Trade-Backend/internal/middleware"
	"Moon-Trade-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	CoinHandler        handlers.CoinHandler
	TransactionHandler handlers.TransactionHandler
	ExchangeHandler    handlers.ExchangeHandler
	PlanHandler        handlers.PlanHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Coins()
	c.Transactions()
	c.Exchange()
	c.Plans()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("", c.UserHandler.UpsertProfile)
		user.Get("/data", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetUserData)
	}
}

func (c *Config) Coins() {
	coins := c.App.Group("/api/v1/coins")
	{
		coins.Get("", c.CoinHandler.GetCoins)
		coins.Patch(
			"/:symbol/price",
			c.Middleware.AuthMiddleware(c.JWTService),
			c.Middleware.AdminMiddleware(),
			c.CoinHandler.UpdatePrice,
		)
	}
}

func (c *Config) Transactions() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	admin := c.Middleware.AdminMiddleware()

	tx := c.App.Group("/api/v1/transactions", auth)
	{
		tx.Post("/deposit", c.TransactionHandler.CreateDeposit)
		tx.Post("/withdraw", c.TransactionHandler.CreateWithdraw)
	}

	// admin review queue
	{
		tx.Get("", admin, c.TransactionHandler.ListTransactions)
		tx.Post("/deposits/:id/approve", admin, c.TransactionHandler.ApproveDeposit)
		tx.Post("/deposits/:id/reject", admin, c.TransactionHandler.RejectDeposit)
		tx.Post("/withdrawals/:id/approve", admin, c.TransactionHandler.ApproveWithdraw)
		tx.Post("/withdrawals/:id/reject", admin, c.TransactionHandler.RejectWithdraw)
	}
}

func (c *Config) Exchange() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/api/v1/exchange", auth, c.ExchangeHandler.Exchange)
	c.App.Post("/api/v1/trade", auth, c.ExchangeHandler.Trade)
}

func (c *Config) Plans() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	admin := c.Middleware.AdminMiddleware()

	plans := c.App.Group("/api/v1/plans")
	{
		// external scheduler hits this with the shared key, no auth header
		plans.Post("/apply", c.PlanHandler.ApplyPlan)

		plans.Get("", auth, admin, c.PlanHandler.GetPlans)
		plans.Post("", auth, admin, c.PlanHandler.UpsertPlan)
		plans.Delete("/:day", auth, admin, c.PlanHandler.DeletePlan)
	}
}
