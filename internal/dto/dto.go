package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

// --- Auth ---

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      model.Role `json:"role"`
}

// --- Vehicles ---

// ListVehiclesRequest binds the catalog query string. Price and enum filters
// arrive as strings and are validated by the service so a bad value produces
// a client error naming it instead of a silent default.
type ListVehiclesRequest struct {
	Name     string `form:"name"`
	Brand    string `form:"brand"`
	Model    string `form:"model"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Type     string `form:"type"`
	FuelType string `form:"fuelType"`
	Page     int    `form:"page,default=0" binding:"min=0"`
	Size     int    `form:"size,default=10" binding:"min=1,max=100"`
	SortBy   string `form:"sortBy,default=id"`
	// Anything other than "desc" (any case) sorts ascending.
	SortDir string `form:"sortDir,default=asc"`
}

type VehicleResponse struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Brand             string            `json:"brand"`
	Model             string            `json:"model"`
	Year              int               `json:"year"`
	Color             string            `json:"color"`
	Price             decimal.Decimal   `json:"price"`
	QuantityAvailable int               `json:"quantity_available"`
	Description       string            `json:"description"`
	ImageURL          string            `json:"image_url"`
	Type              model.VehicleType `json:"type"`
	FuelType          model.FuelType    `json:"fuel_type"`
}

type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

// --- Orders ---

type OrderItemRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ListOrdersRequest struct {
	Page    int    `form:"page,default=0" binding:"min=0"`
	Size    int    `form:"size,default=10" binding:"min=1,max=100"`
	SortBy  string `form:"sortBy,default=createdAt"`
	SortDir string `form:"sortDir,default=desc"`
}

type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	VehicleID    uuid.UUID       `json:"vehicle_id"`
	VehicleName  string          `json:"vehicle_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserEmail       string              `json:"user_email"`
	ShippingAddress string              `json:"shipping_address"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          model.OrderStatus   `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}
