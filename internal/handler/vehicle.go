package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/service"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) List(c *gin.Context) {
	var req dto.ListVehiclesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.vehicleService.Search(c.Request.Context(), req)
	if err != nil {
		var enumErr *model.InvalidEnumError
		if errors.As(err, &enumErr) || errors.Is(err, service.ErrInvalidPrice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VehicleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle ID"})
		return
	}

	resp, err := h.vehicleService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
