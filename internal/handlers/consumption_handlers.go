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

// ConsumptionHandler holds the consumption service.
type ConsumptionHandler struct {
	consumptionService services.ConsumptionService
}

// NewConsumptionHandler creates a new ConsumptionHandler.
func NewConsumptionHandler(cs services.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{consumptionService: cs}
}

// CreateServiceItem handles the creation of a new billable service item.
func (h *ConsumptionHandler) CreateServiceItem(c *gin.Context) {
	var req services.CreateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.consumptionService.CreateServiceItem(req)
	if err != nil {
		if errors.Is(err, services.ErrConsumptionValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateServiceItem: Error from consumptionService.CreateServiceItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create service item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetServiceItems handles listing service items.
func (h *ConsumptionHandler) GetServiceItems(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	items, err := h.consumptionService.GetServiceItems(activeOnly)
	if err != nil {
		utils.LogError(err, "GetServiceItems: Error from consumptionService.GetServiceItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch service items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// RecordConsumption handles recording a consumption charge against a
// reservation.
func (h *ConsumptionHandler) RecordConsumption(c *gin.Context) {
	var req services.CreateConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	record, err := h.consumptionService.RecordConsumption(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConsumptionValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		case errors.Is(err, services.ErrReservationForConsumptionGone),
			errors.Is(err, services.ErrServiceItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), err.Error()))
		default:
			utils.LogError(err, "RecordConsumption: Error from consumptionService.RecordConsumption")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record consumption.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetConsumptionRecords handles listing consumption records with filters.
func (h *ConsumptionHandler) GetConsumptionRecords(c *gin.Context) {
	var filters models.ConsumptionFilters
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	if professionalIDStr := c.Query("professional_id"); professionalIDStr != "" {
		id, err := strconv.ParseInt(professionalIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid professional_id format.", err.Error()))
			return
		}
		filters.ProfessionalID = &id
	}
	if reservationIDStr := c.Query("reservation_id"); reservationIDStr != "" {
		id, err := strconv.ParseInt(reservationIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation_id format.", err.Error()))
			return
		}
		filters.ReservationID = &id
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

	records, err := h.consumptionService.GetConsumptionRecords(filters)
	if err != nil {
		utils.LogError(err, "GetConsumptionRecords: Error from consumptionService.GetConsumptionRecords")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch consumption records.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, records)
}
