package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/middleware"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.Principal(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, req)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.As(err, &stockErr),
			errors.Is(err, service.ErrVehicleNotFound),
			errors.Is(err, service.ErrBlankShippingAddress),
			errors.Is(err, service.ErrNoOrderItems),
			errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order, user.Email))
}

func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.Principal(c)

	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, total, err := h.orderService.ListByUser(c.Request.Context(), user.ID, req.Page, req.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i], user.Email))
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: items, Total: total, Page: req.Page, Size: req.Size})
}

func toOrderResponse(order *model.Order, userEmail string) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:           item.ID,
			VehicleID:    item.VehicleID,
			VehicleName:  item.VehicleName,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			TotalPrice:   item.TotalPrice,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		UserEmail:       userEmail,
		ShippingAddress: order.ShippingAddress,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
