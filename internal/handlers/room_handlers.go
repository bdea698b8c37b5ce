package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"multibook_backend/internal/models"
	"multibook_backend/internal/services"
	"multibook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler holds the room service.
type RoomHandler struct {
	roomService services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rs services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rs}
}

// CreateRoom handles the creation of a new room.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	room, err := h.roomService.CreateRoom(req)
	if err != nil {
		utils.LogError(err, "CreateRoom: Error from roomService.CreateRoom")
		if errors.Is(err, services.ErrRoomValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRooms handles fetching rooms with optional filters.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	var filters models.RoomFilters

	if professionalIDStr := c.Query("professional_id"); professionalIDStr != "" {
		id, err := strconv.ParseInt(professionalIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid professional_id format.", err.Error()))
			return
		}
		filters.ProfessionalID = &id
	}
	if roomType := c.Query("room_type"); roomType != "" {
		filters.RoomType = &roomType
	}
	filters.ActiveOnly = c.Query("active_only") == "true"

	rooms, err := h.roomService.GetRooms(filters)
	if err != nil {
		utils.LogError(err, "GetRooms: Error from roomService.GetRooms")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch rooms.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomByID handles fetching a single room.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	room, err := h.roomService.GetRoomByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", ""))
		} else {
			utils.LogError(err, "GetRoomByID: Error from roomService.GetRoomByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom handles updating a room.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	room, err := h.roomService.UpdateRoom(id, req)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", ""))
		} else if errors.Is(err, services.ErrRoomValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateRoom: Error from roomService.UpdateRoom")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles deleting a room.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid room ID format.", err.Error()))
		return
	}

	if err := h.roomService.DeleteRoom(id); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Room not found.", ""))
		} else {
			utils.LogError(err, "DeleteRoom: Error from roomService.DeleteRoom")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete room.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
