package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidPrice    = errors.New("invalid price filter")
)

const vehicleCacheTTL = 60 * time.Second

type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	redisClient *redis.Client
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, redisClient *redis.Client) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, redisClient: redisClient}
}

// Search runs the filtered catalog query. Enum and price filters are
// validated here so a bad value comes back as a client error naming it.
func (s *VehicleService) Search(ctx context.Context, req dto.ListVehiclesRequest) (*dto.VehicleListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	offset := req.Page * req.Size
	vehicles, total, err := s.vehicleRepo.Search(ctx, filter, req.Size, offset, req.SortBy, req.SortDir)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}

	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, toVehicleResponse(&vehicles[i]))
	}
	return &dto.VehicleListResponse{Vehicles: items, Total: total, Page: req.Page, Size: req.Size}, nil
}

func buildFilter(req dto.ListVehiclesRequest) (repository.VehicleFilter, error) {
	var f repository.VehicleFilter

	if req.Name != "" {
		f.Name = &req.Name
	}
	if req.Brand != "" {
		f.Brand = &req.Brand
	}
	if req.Model != "" {
		f.Model = &req.Model
	}
	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return f, fmt.Errorf("%w: %s", ErrInvalidPrice, req.MinPrice)
		}
		f.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return f, fmt.Errorf("%w: %s", ErrInvalidPrice, req.MaxPrice)
		}
		f.MaxPrice = &max
	}
	if req.Type != "" {
		vt, err := model.ParseVehicleType(req.Type)
		if err != nil {
			return f, err
		}
		f.Type = &vt
	}
	if req.FuelType != "" {
		ft, err := model.ParseFuelType(req.FuelType)
		if err != nil {
			return f, err
		}
		f.FuelType = &ft
	}
	return f, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.VehicleResponse, error) {
	cacheKey := vehicleCacheKey(id)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.VehicleResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	resp := toVehicleResponse(vehicle)

	if s.redisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, vehicleCacheTTL)
		}
	}
	return &resp, nil
}

func vehicleCacheKey(id uuid.UUID) string { return "vehicle:" + id.String() }

func toVehicleResponse(v *model.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:                v.ID,
		Name:              v.Name,
		Brand:             v.Brand,
		Model:             v.Model,
		Year:              v.Year,
		Color:             v.Color,
		Price:             v.Price,
		QuantityAvailable: v.QuantityAvailable,
		Description:       v.Description,
		ImageURL:          v.ImageURL,
		Type:              v.Type,
		FuelType:          v.FuelType,
	}
}
