package router

import (
	"database/sql"

	"multibook_backend/internal/handlers"
	"multibook_backend/internal/middleware"
	"multibook_backend/internal/repositories"
	"multibook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	consumptionRepo := repositories.NewConsumptionRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	roomService := services.NewRoomService(roomRepo, db)
	reservationService := services.NewReservationService(reservationRepo, roomRepo, db)
	consumptionService := services.NewConsumptionService(consumptionRepo, reservationRepo, db)
	reportService := services.NewReportService(reportRepo, nil)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	consumptionHandler := handlers.NewConsumptionHandler(consumptionService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupRoomRoutes(authenticated, roomHandler)
		SetupReservationRoutes(authenticated, reservationHandler)
		SetupConsumptionRoutes(authenticated, consumptionHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes sets up the unauthenticated auth routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes sets up the auth routes that require a token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}
