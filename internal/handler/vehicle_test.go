package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
	"github.com/drivetrade/vehicle-store-api/internal/service"
)

type stubVehicleRepo struct {
	vehicles map[uuid.UUID]*model.Vehicle
}

func (s *stubVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return s.vehicles[id], nil
}

func (s *stubVehicleRepo) Search(context.Context, repository.VehicleFilter, int, int, string, string) ([]model.Vehicle, int, error) {
	return nil, 0, nil
}

func (s *stubVehicleRepo) GetForUpdate(context.Context, pgx.Tx, uuid.UUID) (*model.Vehicle, error) {
	return nil, nil
}

func (s *stubVehicleRepo) DecrementStock(context.Context, pgx.Tx, uuid.UUID, int) error {
	return nil
}

func vehicleTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := &stubVehicleRepo{vehicles: make(map[uuid.UUID]*model.Vehicle)}
	h := NewVehicleHandler(service.NewVehicleService(repo, nil))

	router := gin.New()
	router.GET("/api/vehicles", h.List)
	router.GET("/api/vehicles/:id", h.GetByID)
	return router
}

func TestVehicleHandler_List_InvalidType(t *testing.T) {
	router := vehicleTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles?type=CAR", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CAR", "error must name the invalid value")
}

func TestVehicleHandler_List_Defaults(t *testing.T) {
	router := vehicleTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":0`)
	assert.Contains(t, w.Body.String(), `"size":10`)
}

func TestVehicleHandler_List_SortDirTolerant(t *testing.T) {
	router := vehicleTestRouter()

	// sortDir is not validated at the edge; anything but "desc" sorts
	// ascending further down.
	for _, dir := range []string{"ASC", "DESC", "sideways"} {
		req := httptest.NewRequest(http.MethodGet, "/api/vehicles?sortDir="+dir, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "sortDir=%s", dir)
	}
}

func TestVehicleHandler_GetByID_NotFound(t *testing.T) {
	router := vehicleTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVehicleHandler_GetByID_BadID(t *testing.T) {
	router := vehicleTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
