package router

import (
	"multibook_backend/internal/handlers"
	"multibook_backend/internal/middleware"
	"multibook_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupRoomRoutes sets up the room routes. Writes are restricted to admins
// and professionals; staff may read.
func SetupRoomRoutes(authenticatedGroup *gin.RouterGroup, roomHandler *handlers.RoomHandler) {
	roomWriteRoutes := authenticatedGroup.Group("/rooms")
	roomWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleProfessional))
	{
		roomWriteRoutes.POST("", roomHandler.CreateRoom)
		roomWriteRoutes.PUT("/:id", roomHandler.UpdateRoom)
		roomWriteRoutes.DELETE("/:id", roomHandler.DeleteRoom)
	}

	authenticatedGroup.GET("/rooms", roomHandler.GetRooms)
	authenticatedGroup.GET("/rooms/:id", roomHandler.GetRoomByID)
}

// SetupReservationRoutes sets up the reservation routes.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		reservationRoutes.PUT("/:id", reservationHandler.UpdateReservation)
		reservationRoutes.PATCH("/:id/cancel", reservationHandler.CancelReservation)
		reservationRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleProfessional), reservationHandler.DeleteReservation)
	}
}

// SetupConsumptionRoutes sets up the service item and consumption routes.
func SetupConsumptionRoutes(authenticatedGroup *gin.RouterGroup, consumptionHandler *handlers.ConsumptionHandler) {
	serviceItemRoutes := authenticatedGroup.Group("/service-items")
	{
		serviceItemRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleProfessional), consumptionHandler.CreateServiceItem)
		serviceItemRoutes.GET("", consumptionHandler.GetServiceItems)
	}

	consumptionRoutes := authenticatedGroup.Group("/consumption")
	{
		consumptionRoutes.POST("", consumptionHandler.RecordConsumption)
		consumptionRoutes.GET("", consumptionHandler.GetConsumptionRecords)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/occupancy", reportHandler.GetOccupancyReport)
	}
}
