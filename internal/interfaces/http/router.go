package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/auth"
	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	RoomUC        *usecase.RoomUseCase
	TenantUC      *usecase.TenantUseCase
	RentalUC      *usecase.RentalUseCase
	BillingUC     *usecase.BillingUseCase
	ReceiptUC     *usecase.ReceiptUseCase
	LedgerUC      *usecase.LedgerUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	DashboardUC   *usecase.DashboardUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registers the API routes. Auth endpoints are public; every other
// route needs a Bearer token. Reads are open to both roles, mutations are
// admin only.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Rooms
	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Post("/", adminOnly, roomHandler.Create)
	rooms.Put("/:id", adminOnly, roomHandler.Update)
	rooms.Delete("/:id", adminOnly, roomHandler.Delete)
	rooms.Post("/:id/occupy", adminOnly, roomHandler.SetOccupied)
	rooms.Post("/:id/vacate", adminOnly, roomHandler.SetVacant)

	// Tenants
	tenants := protected.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Post("/", adminOnly, tenantHandler.Create)
	tenants.Put("/:id", adminOnly, tenantHandler.Update)
	tenants.Delete("/:id", adminOnly, tenantHandler.Delete)

	// Rentals
	rentals := protected.Group("/rentals")
	rentalHandler := NewRentalHandler(deps.RentalUC)
	rentals.Get("/", rentalHandler.List)
	rentals.Get("/:id", rentalHandler.GetByID)
	rentals.Post("/", adminOnly, rentalHandler.Open)
	rentals.Post("/:id/end", adminOnly, rentalHandler.End)

	// Bills
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillingUC, deps.ReceiptUC)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Get("/:id/receipt", billHandler.Receipt)
	bills.Post("/", adminOnly, billHandler.Create)
	bills.Post("/generate", adminOnly, billHandler.GenerateMonthly)
	bills.Post("/:id/pay", adminOnly, billHandler.Pay)
	bills.Post("/:id/proof", adminOnly, billHandler.AttachProof)

	// Ledger
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/summary", transactionHandler.Summary)
	transactions.Post("/", adminOnly, transactionHandler.Create)

	// Maintenance
	maintenance := protected.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maintenance.Get("/", maintenanceHandler.List)
	maintenance.Get("/:id", maintenanceHandler.GetByID)
	maintenance.Post("/", adminOnly, maintenanceHandler.Create)
	maintenance.Put("/:id", adminOnly, maintenanceHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
