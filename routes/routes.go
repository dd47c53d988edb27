package routes

import (
	"iqr-control-backend/config"
	"iqr-control-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(cfg *config.Config, h *Handlers, logger *zap.Logger) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(utils.Recovery(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(logger.Named("http"), cfg.HTTP.SlowRequestThreshold))

	authMiddleware := utils.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.CookieName)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)

		auth.Use(authMiddleware)
		auth.GET("/user", h.Auth.Me)
		auth.PUT("/user/profile", h.Users.UpdateProfile)
	}

	r.GET("/uploads/:key", authMiddleware, h.Uploads.Serve)

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/dashboard/stats", h.Dashboard.GetStats)
		api.GET("/activities", h.Dashboard.GetActivities)

		customers := api.Group("/customers")
		{
			customers.GET("", h.Customers.GetCustomers)
			customers.POST("", h.Customers.CreateCustomer)
			customers.GET("/expiring/:days", h.Customers.GetExpiringCustomers)
			customers.GET("/:id", h.Customers.GetCustomer)
			customers.PUT("/:id", h.Customers.UpdateCustomer)
			customers.DELETE("/:id", h.Customers.DeleteCustomer)
			customers.PATCH("/:id/renew", h.Customers.RenewSubscription)
		}

		income := api.Group("/income")
		{
			income.GET("", h.Income.GetIncome)
			income.GET("/prints", h.Income.GetPrintIncome)
			income.GET("/:id", h.Income.GetIncomeEntry)
			income.POST("", h.Income.CreateIncome)
			income.PUT("/:id", h.Income.UpdateIncome)
			income.DELETE("/:id", h.Income.DeleteIncome)
		}

		receivables := api.Group("/receivables")
		{
			receivables.GET("", h.Receivables.GetReceivables)
			receivables.POST("", h.Receivables.CreateReceivable)
			receivables.PATCH("/:id/pay", h.Receivables.PayReceivable)
			receivables.DELETE("/:id", h.Receivables.DeleteReceivable)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", h.Expenses.GetExpenses)
			expenses.GET("/:id", h.Expenses.GetExpense)
			expenses.POST("", h.Expenses.CreateExpense)
			expenses.PUT("/:id", h.Expenses.UpdateExpense)
			expenses.DELETE("/:id", h.Expenses.DeleteExpense)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", h.Employees.GetEmployees)
			employees.POST("", h.Employees.AddEmployee)
			employees.PUT("/:id", h.Employees.UpdateEmployee)
			employees.DELETE("/:id", h.Employees.DeleteEmployee)
		}

		users := api.Group("/users")
		{
			users.GET("", h.Users.GetUsers)
			users.POST("", h.Users.CreateUser)
		}

		api.POST("/reports/generate", h.Reports.GenerateReport)
		api.POST("/reminders/run", h.Reminders.RunReminders)
		api.POST("/upload", h.Uploads.Upload)
	}

	return r
}
