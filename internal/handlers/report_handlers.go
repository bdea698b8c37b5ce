package handlers

import (
	"errors"
	"net/http"

	"multibook_backend/internal/middleware"
	"multibook_backend/internal/models"
	"multibook_backend/internal/services"
	"multibook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetOccupancyReport handles GET /reports/occupancy. The response always
// uses the {success, data, error} envelope, including failures.
func (h *ReportHandler) GetOccupancyReport(c *gin.Context) {
	professionalIDStr := c.Query("professional_id")
	if professionalIDStr == "" {
		c.JSON(http.StatusBadRequest, models.ReportResponse{
			Success: false,
			Error:   "professional_id is required",
		})
		return
	}
	professionalID, err := utils.StrToInt64(professionalIDStr)
	if err != nil || professionalID <= 0 {
		c.JSON(http.StatusBadRequest, models.ReportResponse{
			Success: false,
			Error:   "professional_id must be a positive integer",
		})
		return
	}

	if !middleware.ProfessionalAuthorized(c, professionalID) {
		c.JSON(http.StatusForbidden, models.ReportResponse{
			Success: false,
			Error:   "not authorized for this professional",
		})
		return
	}

	req := services.OccupancyReportRequest{
		ProfessionalID: professionalID,
		StartDate:      c.Query("start_date"),
		EndDate:        c.Query("end_date"),
	}

	report, err := h.reportService.GenerateOccupancyReport(req)
	if err != nil {
		if errors.Is(err, services.ErrReportValidation) {
			c.JSON(http.StatusBadRequest, models.ReportResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		utils.LogError(err, "GetOccupancyReport: Error from reportService.GenerateOccupancyReport")
		c.JSON(http.StatusInternalServerError, models.ReportResponse{
			Success: false,
			Error:   "failed to generate report",
		})
		return
	}

	c.JSON(http.StatusOK, models.ReportResponse{
		Success: true,
		Data:    report,
	})
}
