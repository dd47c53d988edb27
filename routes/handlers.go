package routes

import (
	"time"

	"iqr-control-backend/config"
	"iqr-control-backend/controllers"
	"iqr-control-backend/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the shared resources the handlers are built from
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    *services.StatsCache
	Storage  services.ReceiptStorage
	Notifier services.Notifier
	Logger   *zap.Logger
}

// Handlers groups every controller mounted by SetupRouter
type Handlers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Customers   *controllers.CustomerController
	Income      *controllers.IncomeController
	Receivables *controllers.ReceivableController
	Expenses    *controllers.ExpenseController
	Employees   *controllers.EmployeeController
	Dashboard   *controllers.DashboardController
	Reports     *controllers.ReportController
	Reminders   *controllers.ReminderController
	Uploads     *controllers.UploadController

	// ReminderService is exposed so the caller can start and stop its schedule
	ReminderService *services.ReminderService
}

func NewHandlers(deps Dependencies) *Handlers {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = services.NewLogNotifier(logger)
	}

	ledger := services.NewLedgerService(deps.DB, deps.Cache, logger)
	customers := services.NewCustomerService(deps.DB, deps.Cache, logger)
	expenses := services.NewExpenseService(deps.DB, deps.Cache)
	employees := services.NewEmployeeService(deps.DB, deps.Cache)
	users := services.NewUserService(deps.DB, logger)
	activities := services.NewActivityService(deps.DB)
	dashboard := services.NewDashboardService(deps.DB, deps.Cache, logger)
	reports := services.NewReportService(deps.DB, dashboard)
	reminders := services.NewReminderService(deps.DB, customers, notifier,
		cfg.Scheduler.ReminderDays, cfg.Scheduler.DeactivateExpired, logger)

	uploads := controllers.NewUploadController(deps.Storage, cfg.Upload.MaxSize)
	expiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour

	return &Handlers{
		Auth:            controllers.NewAuthController(users, cfg.JWT.Secret, expiry, cfg.JWT.CookieName, cfg.IsProduction()),
		Users:           controllers.NewUserController(users),
		Customers:       controllers.NewCustomerController(customers),
		Income:          controllers.NewIncomeController(ledger, uploads),
		Receivables:     controllers.NewReceivableController(ledger),
		Expenses:        controllers.NewExpenseController(expenses, uploads),
		Employees:       controllers.NewEmployeeController(employees),
		Dashboard:       controllers.NewDashboardController(dashboard, activities),
		Reports:         controllers.NewReportController(reports),
		Reminders:       controllers.NewReminderController(reminders),
		Uploads:         uploads,
		ReminderService: reminders,
	}
}
