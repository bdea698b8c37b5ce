package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"multibook_backend/internal/models"
	"multibook_backend/internal/services"
	"multibook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

func respondReservationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", ""))
	case errors.Is(err, services.ErrInvalidStayInterval),
		errors.Is(err, services.ErrReservationValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	case errors.Is(err, services.ErrRoomForReservationMissing),
		errors.Is(err, services.ErrRoomInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), err.Error()))
	default:
		utils.LogError(err, action+": reservation service error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+" reservation.", "Internal error"))
	}
}

// CreateReservation handles the creation of a new reservation.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	reservation, err := h.reservationService.CreateReservation(req)
	if err != nil {
		respondReservationError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles fetching reservations with pagination and filters.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var filters models.ReservationFilters
	filters.Page = page
	filters.PageSize = pageSize

	if professionalIDStr := c.Query("professional_id"); professionalIDStr != "" {
		id, err := strconv.ParseInt(professionalIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid professional_id format.", err.Error()))
			return
		}
		filters.ProfessionalID = &id
	}
	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		id, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room_id format.", err.Error()))
			return
		}
		filters.RoomID = &id
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if !models.IsValidReservationStatus(statusStr) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status value.", "status: "+statusStr))
			return
		}
		filters.Status = &statusStr
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		t, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filters.DateFrom = &t
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		t, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filters.DateTo = &t
	}

	reservations, totalCount, err := h.reservationService.GetReservations(filters)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.GetReservations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        reservations,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetReservationByID handles fetching a single reservation.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.GetReservationByID(id)
	if err != nil {
		respondReservationError(c, err, "fetch")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles amending a reservation.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	reservation, err := h.reservationService.UpdateReservation(id, req)
	if err != nil {
		respondReservationError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservation handles cancelling a reservation.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.CancelReservation(id)
	if err != nil {
		respondReservationError(c, err, "cancel")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles deleting a reservation.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	if err := h.reservationService.DeleteReservation(id); err != nil {
		respondReservationError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
