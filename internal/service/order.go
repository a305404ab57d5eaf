package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
)

var (
	ErrBlankShippingAddress = errors.New("shipping address is required")
	ErrNoOrderItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)

// InsufficientStockError reports a line item asking for more units than the
// vehicle has on hand.
type InsufficientStockError struct {
	VehicleID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough vehicles available. Available: %d, Requested: %d", e.Available, e.Requested)
}

type OrderService struct {
	orderRepo   repository.OrderRepository
	vehicleRepo repository.VehicleRepository
	amqpCh      *amqp.Channel
}

func NewOrderService(orderRepo repository.OrderRepository, vehicleRepo repository.VehicleRepository, amqpCh *amqp.Channel) *OrderService {
	return &OrderService{orderRepo: orderRepo, vehicleRepo: vehicleRepo, amqpCh: amqpCh}
}

// Create places an order inside a single transaction. Items are processed in
// request order: each vehicle row is locked, checked against the requested
// quantity, decremented immediately, and its current price snapshotted into
// the line item. A later line referencing the same vehicle therefore sees the
// earlier decrement. Any failure rolls back every decrement and the order.
func (s *OrderService) Create(ctx context.Context, user *model.User, req dto.CreateOrderRequest) (*model.Order, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, ErrBlankShippingAddress
	}
	if len(req.Items) == 0 {
		return nil, ErrNoOrderItems
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))

	for _, ir := range req.Items {
		if ir.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		vehicle, err := s.vehicleRepo.GetForUpdate(ctx, tx, ir.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, fmt.Errorf("vehicle %s: %w", ir.VehicleID, ErrVehicleNotFound)
		}
		if vehicle.QuantityAvailable < ir.Quantity {
			return nil, &InsufficientStockError{
				VehicleID: vehicle.ID,
				Available: vehicle.QuantityAvailable,
				Requested: ir.Quantity,
			}
		}

		if err := s.vehicleRepo.DecrementStock(ctx, tx, vehicle.ID, ir.Quantity); err != nil {
			return nil, err
		}

		lineTotal := vehicle.Price.Mul(decimal.NewFromInt(int64(ir.Quantity)))
		items = append(items, model.OrderItem{
			VehicleID:    vehicle.ID,
			VehicleName:  vehicle.Name,
			Quantity:     ir.Quantity,
			PricePerUnit: vehicle.Price,
			TotalPrice:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	order := &model.Order{
		UserID:          user.ID,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
	}
	if err := s.orderRepo.Insert(ctx, tx, order); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orderRepo.InsertItems(ctx, tx, items); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	order.Items = items

	s.publishOrderPlaced(ctx, order)
	return order, nil
}

// publishOrderPlaced emits a post-commit event for the worker. Best effort:
// the order is already committed, so a publish failure is not surfaced.
func (s *OrderService) publishOrderPlaced(ctx context.Context, order *model.Order) {
	if s.amqpCh == nil {
		return
	}
	vehicleIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		vehicleIDs = append(vehicleIDs, item.VehicleID)
	}
	msg, _ := json.Marshal(model.OrderPlacedMessage{
		OrderID: order.ID, UserID: order.UserID, VehicleIDs: vehicleIDs,
	})
	_ = s.amqpCh.PublishWithContext(ctx, "", "orders.placed", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         msg,
		DeliveryMode: amqp.Persistent,
	})
}

// ListByUser pages over the caller's full order history in memory. Per-user
// order counts are assumed bounded; the repository already sorts newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]model.Order, int, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	total := len(orders)
	start := page * size
	if start >= total {
		return nil, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return orders[start:end], total, nil
}
