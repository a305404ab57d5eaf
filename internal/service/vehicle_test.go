package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
)

type mockVehicleRepo struct {
	vehicles map[uuid.UUID]*model.Vehicle

	lastFilter repository.VehicleFilter
	lastLimit  int
	lastOffset int
	results    []model.Vehicle
	total      int
}

func newMockVehicleRepo() *mockVehicleRepo {
	return &mockVehicleRepo{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (m *mockVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return m.vehicles[id], nil
}

func (m *mockVehicleRepo) Search(_ context.Context, f repository.VehicleFilter, limit, offset int, _, _ string) ([]model.Vehicle, int, error) {
	m.lastFilter = f
	m.lastLimit = limit
	m.lastOffset = offset
	return m.results, m.total, nil
}

func (m *mockVehicleRepo) GetForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*model.Vehicle, error) {
	return m.vehicles[id], nil
}

func (m *mockVehicleRepo) DecrementStock(context.Context, pgx.Tx, uuid.UUID, int) error {
	return nil
}

func TestVehicleService_Search_BuildsFilter(t *testing.T) {
	repo := newMockVehicleRepo()
	svc := NewVehicleService(repo, nil)

	_, err := svc.Search(context.Background(), dto.ListVehiclesRequest{
		Brand:    "Tesla",
		MinPrice: "10000",
		Type:     "suv",
		Page:     2,
		Size:     10,
		SortBy:   "price",
		SortDir:  "desc",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.Brand)
	assert.Equal(t, "Tesla", *repo.lastFilter.Brand)
	assert.Nil(t, repo.lastFilter.Name, "absent filter imposes no constraint")
	assert.Nil(t, repo.lastFilter.MaxPrice)
	require.NotNil(t, repo.lastFilter.MinPrice)
	assert.True(t, repo.lastFilter.MinPrice.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, repo.lastFilter.Type)
	assert.Equal(t, model.VehicleTypeSUV, *repo.lastFilter.Type)

	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, 20, repo.lastOffset, "zero-based page index")
}

func TestVehicleService_Search_InvalidVehicleType(t *testing.T) {
	svc := NewVehicleService(newMockVehicleRepo(), nil)

	_, err := svc.Search(context.Background(), dto.ListVehiclesRequest{Type: "CAR", Size: 10})

	var enumErr *model.InvalidEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "CAR", enumErr.Value)
	assert.Contains(t, err.Error(), "CAR")
}

func TestVehicleService_Search_InvalidFuelType(t *testing.T) {
	svc := NewVehicleService(newMockVehicleRepo(), nil)

	_, err := svc.Search(context.Background(), dto.ListVehiclesRequest{FuelType: "COAL", Size: 10})

	var enumErr *model.InvalidEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "COAL", enumErr.Value)
}

func TestVehicleService_Search_InvalidPrice(t *testing.T) {
	svc := NewVehicleService(newMockVehicleRepo(), nil)

	_, err := svc.Search(context.Background(), dto.ListVehiclesRequest{MinPrice: "cheap", Size: 10})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestVehicleService_Search_OutOfRangePage(t *testing.T) {
	repo := newMockVehicleRepo()
	repo.total = 3
	svc := NewVehicleService(repo, nil)

	resp, err := svc.Search(context.Background(), dto.ListVehiclesRequest{Page: 50, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Vehicles)
	assert.Equal(t, 3, resp.Total)
}

func TestVehicleService_GetByID(t *testing.T) {
	repo := newMockVehicleRepo()
	v := &model.Vehicle{
		ID:    uuid.New(),
		Name:  "Model Y",
		Price: decimal.NewFromInt(45000),
		Type:  model.VehicleTypeSUV,
	}
	repo.vehicles[v.ID] = v
	svc := NewVehicleService(repo, nil)

	resp, err := svc.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, resp.ID)
	assert.Equal(t, "Model Y", resp.Name)
}

func TestVehicleService_GetByID_NotFound(t *testing.T) {
	svc := NewVehicleService(newMockVehicleRepo(), nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
