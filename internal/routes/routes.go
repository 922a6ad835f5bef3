package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/billing"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/config"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/handlers"
	"github.com/ClinicFlowBR/clinicflow/internal/identity"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/notify"
	"github.com/ClinicFlowBR/clinicflow/internal/storage"
	ucAllocation "github.com/ClinicFlowBR/clinicflow/internal/usecase/allocation"
	ucEvent "github.com/ClinicFlowBR/clinicflow/internal/usecase/event"
	ucFinancial "github.com/ClinicFlowBR/clinicflow/internal/usecase/financial"
	ucInventory "github.com/ClinicFlowBR/clinicflow/internal/usecase/inventory"
	ucPayment "github.com/ClinicFlowBR/clinicflow/internal/usecase/payment"
	ucUser "github.com/ClinicFlowBR/clinicflow/internal/usecase/user"
)

// Deps agrupa os colaboradores externos montados no main.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	Cache *cache.Cache
	Store clinic.Store
	Log   *zap.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log)

	provider := identity.NewLocalProvider(d.DB, cfg.JWTSecret)
	signupClient := identity.NewLocalSignUpClient(d.DB)
	binder := identity.NewBinder(d.Store, d.Cache, cfg.BootstrapAdminEmail, d.Log)

	// Todo SIGNED_IN do provedor passa pelo binder: bootstrap de ADMIN e
	// refresh do cache acontecem no evento, não no handler de login.
	provider.Subscribe(binder.ObserveAuth)

	watermarks := notify.NewRedisWatermarkStore(d.Redis)
	counter := notify.NewCounter(d.Cache, watermarks)

	uploader := storage.NewUploader(cfg)

	checkout, err := billing.NewCheckout(cfg.MercadoPagoToken)
	if err != nil {
		// sobe sem link de pagamento; a baixa manual continua funcionando
		d.Log.Warn("mercadopago indisponível", zap.Error(err))
		checkout = nil
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAllocationUC := ucAllocation.NewCreate(d.Store, d.Cache, auditDispatcher)
	deleteAllocationUC := ucAllocation.NewDelete(d.Store, d.Cache, auditDispatcher)
	deleteRoomUC := ucAllocation.NewDeleteRoom(d.Store, d.Cache, auditDispatcher)

	requestLoanUC := ucInventory.NewRequestLoan(d.Store, d.Cache, auditDispatcher)
	returnLoanUC := ucInventory.NewReturnLoan(d.Store, d.Cache, auditDispatcher)
	updateItemUC := ucInventory.NewUpdateItem(d.Store, d.Cache, auditDispatcher)

	registerUC := ucEvent.NewRegister(d.Store, d.Cache, auditDispatcher)
	deleteEventUC := ucEvent.NewDelete(d.Store, d.Cache, auditDispatcher)

	confirmPaymentUC := ucPayment.NewConfirm(d.Store, d.Cache, auditDispatcher)

	renameCategoryUC := ucFinancial.NewRenameCategory(d.Store, d.Cache, auditDispatcher)
	deleteCategoryUC := ucFinancial.NewDeleteCategory(d.Store, d.Cache, auditDispatcher)
	summaryUC := ucFinancial.NewSummary(d.Cache)

	provisionUserUC := ucUser.NewProvision(signupClient, d.Store, d.Cache, auditDispatcher)
	toggleUserUC := ucUser.NewToggleStatus(d.Store, d.Cache, auditDispatcher)
	updateProfileUC := ucUser.NewUpdateProfile(d.Store, d.Cache, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(provider, binder)
	stateHandler := handlers.NewStateHandler(d.Cache)
	userHandler := handlers.NewUserHandler(d.Store, d.Cache, auditDispatcher, uploader, provisionUserUC, toggleUserUC, updateProfileUC)
	roomHandler := handlers.NewRoomHandler(d.Store, d.Cache, auditDispatcher, deleteRoomUC)
	allocationHandler := handlers.NewAllocationHandler(d.Cache, createAllocationUC, deleteAllocationUC)
	inventoryHandler := handlers.NewInventoryHandler(d.Store, d.Cache, auditDispatcher, requestLoanUC, returnLoanUC, updateItemUC)
	paymentHandler := handlers.NewPaymentHandler(d.Store, d.Cache, auditDispatcher, confirmPaymentUC, checkout)
	patientHandler := handlers.NewPatientHandler(d.Store, d.Cache, auditDispatcher)
	eventHandler := handlers.NewEventHandler(d.Store, d.Cache, auditDispatcher, registerUC, deleteEventUC)
	documentHandler := handlers.NewDocumentHandler(d.Store, d.Cache, auditDispatcher)
	financialHandler := handlers.NewFinancialHandler(d.Store, d.Cache, auditDispatcher, renameCategoryUC, deleteCategoryUC, summaryUC)
	settingsHandler := handlers.NewSettingsHandler(d.Store, d.Cache, auditDispatcher, uploader)
	notificationHandler := handlers.NewNotificationHandler(counter)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/public/events", eventHandler.List)
		api.POST("/public/events/:id/registrations", eventHandler.Register)
		api.GET("/public/settings", settingsHandler.Get)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/recover", authHandler.RequestPasswordReset)
		api.POST("/auth/password", authHandler.UpdatePassword)

		// ------------------------------
		// 🔐 API PRIVADA (qualquer perfil)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(provider, binder))
		{
			secured.GET("/me", authHandler.Me)
			secured.PUT("/me/profile", userHandler.UpdateProfile)
			secured.GET("/state", stateHandler.Get)

			secured.GET("/allocations", allocationHandler.List)

			secured.GET("/inventory", inventoryHandler.ListItems)
			secured.GET("/loans", inventoryHandler.ListLoans)
			secured.POST("/loans", inventoryHandler.RequestLoan)
			secured.PATCH("/loans/:id/return", inventoryHandler.ReturnLoan)

			secured.GET("/payments", paymentHandler.List)
			secured.GET("/payments/:id/checkout", paymentHandler.CheckoutLink)

			secured.GET("/documents", documentHandler.List)
			secured.GET("/events", eventHandler.List)

			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.PUT("/patients/:id", patientHandler.Update)
			secured.DELETE("/patients/:id", patientHandler.Delete)

			secured.GET("/notifications", notificationHandler.Counts)
			secured.POST("/notifications/:kind/read", notificationHandler.MarkRead)

			secured.POST("/users/:id/photo", userHandler.UploadPhoto)
		}

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(provider, binder))
		admin.Use(middleware.RequireRole(clinic.RoleAdmin))
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.PATCH("/users/:id/status", userHandler.ToggleStatus)

			admin.GET("/rooms", roomHandler.List)
			admin.POST("/rooms", roomHandler.Create)
			admin.PUT("/rooms/:id", roomHandler.Update)
			admin.DELETE("/rooms/:id", roomHandler.Delete)

			admin.POST("/allocations", allocationHandler.Create)
			admin.DELETE("/allocations/:id", allocationHandler.Delete)

			admin.POST("/inventory", inventoryHandler.CreateItem)
			admin.PUT("/inventory/:id", inventoryHandler.UpdateItem)
			admin.DELETE("/inventory/:id", inventoryHandler.DeleteItem)

			admin.POST("/payments", paymentHandler.Create)
			admin.PUT("/payments/:id", paymentHandler.Update)
			admin.PATCH("/payments/:id/confirm", paymentHandler.Confirm)
			admin.DELETE("/payments/:id", paymentHandler.Delete)

			admin.POST("/events", eventHandler.Create)
			admin.PUT("/events/:id", eventHandler.Update)
			admin.DELETE("/events/:id", eventHandler.Delete)
			admin.GET("/events/:id/registrations", eventHandler.ListRegistrations)
			admin.PATCH("/events/:id/registrations/:regId/status", eventHandler.SetRegistrationStatus)
			admin.PATCH("/events/:id/registrations/:regId/attendance", eventHandler.SetAttendance)

			admin.POST("/documents", documentHandler.Create)
			admin.PUT("/documents/:id", documentHandler.Update)
			admin.DELETE("/documents/:id", documentHandler.Delete)

			admin.GET("/financial/transactions", financialHandler.ListTransactions)
			admin.POST("/financial/transactions", financialHandler.CreateTransaction)
			admin.PUT("/financial/transactions/:id", financialHandler.UpdateTransaction)
			admin.DELETE("/financial/transactions/:id", financialHandler.DeleteTransaction)

			admin.GET("/financial/categories", financialHandler.ListCategories)
			admin.POST("/financial/categories", financialHandler.CreateCategory)
			admin.PATCH("/financial/categories/:id", financialHandler.RenameCategory)
			admin.DELETE("/financial/categories/:id", financialHandler.DeleteCategory)

			admin.GET("/financial/summary", financialHandler.Summary)

			admin.PUT("/settings", settingsHandler.Update)
			admin.POST("/settings/logo", settingsHandler.UploadLogo)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
