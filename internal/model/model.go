package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VehicleType string

const (
	VehicleTypeSedan       VehicleType = "SEDAN"
	VehicleTypeSUV         VehicleType = "SUV"
	VehicleTypeTruck       VehicleType = "TRUCK"
	VehicleTypeCoupe       VehicleType = "COUPE"
	VehicleTypeConvertible VehicleType = "CONVERTIBLE"
	VehicleTypeHatchback   VehicleType = "HATCHBACK"
)

type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
	FuelTypeHybrid   FuelType = "HYBRID"
)

// InvalidEnumError reports a query or payload value that matches no member of
// an enumeration. The offending value is kept so the error body can name it.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s value: %s", e.Field, e.Value)
}

func ParseVehicleType(s string) (VehicleType, error) {
	switch vt := VehicleType(strings.ToUpper(s)); vt {
	case VehicleTypeSedan, VehicleTypeSUV, VehicleTypeTruck,
		VehicleTypeCoupe, VehicleTypeConvertible, VehicleTypeHatchback:
		return vt, nil
	}
	return "", &InvalidEnumError{Field: "type", Value: s}
}

func ParseFuelType(s string) (FuelType, error) {
	switch ft := FuelType(strings.ToUpper(s)); ft {
	case FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid:
		return ft, nil
	}
	return "", &InvalidEnumError{Field: "fuelType", Value: s}
}

type Vehicle struct {
	ID                uuid.UUID
	Name              string
	Brand             string
	Model             string
	Year              int
	Color             string
	Price             decimal.Decimal
	QuantityAvailable int
	Description       string
	ImageURL          string
	Type              VehicleType
	FuelType          FuelType
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ShippingAddress string
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	Items           []OrderItem
	CreatedAt       time.Time
}

// OrderItem carries a price snapshot: PricePerUnit is the vehicle's price at
// order time and never changes when the vehicle is repriced later.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	VehicleID    uuid.UUID
	VehicleName  string
	Quantity     int
	PricePerUnit decimal.Decimal
	TotalPrice   decimal.Decimal
}

type OrderPlacedMessage struct {
	OrderID    uuid.UUID   `json:"order_id"`
	UserID     uuid.UUID   `json:"user_id"`
	VehicleIDs []uuid.UUID `json:"vehicle_ids"`
}
