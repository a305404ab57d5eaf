package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

// VehicleFilter holds the optional catalog search constraints. A nil field
// imposes no constraint; set fields are ANDed together.
type VehicleFilter struct {
	Name     *string
	Brand    *string
	Model    *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Type     *model.VehicleType
	FuelType *model.FuelType
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Search(ctx context.Context, f VehicleFilter, limit, offset int, sortBy, sortDir string) ([]model.Vehicle, int, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Vehicle, error)
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
}

type pgVehicleRepo struct{ pool *pgxpool.Pool }

func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &pgVehicleRepo{pool: pool}
}

const vehicleColumns = `id, name, brand, model, year, color, price, quantity_available,
	description, image_url, vehicle_type, fuel_type, created_at, updated_at`

func scanVehicle(row pgx.Row, v *model.Vehicle) error {
	return row.Scan(
		&v.ID, &v.Name, &v.Brand, &v.Model, &v.Year, &v.Color, &v.Price,
		&v.QuantityAvailable, &v.Description, &v.ImageURL, &v.Type, &v.FuelType,
		&v.CreatedAt, &v.UpdatedAt,
	)
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := scanVehicle(r.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id), v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

var vehicleSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"brand":     "brand",
	"model":     "model",
	"year":      "year",
	"price":     "price",
	"createdAt": "created_at",
}

// Search composes a WHERE clause from the provided filters only, counts the
// full match set, and returns one page.
func (r *pgVehicleRepo) Search(ctx context.Context, f VehicleFilter, limit, offset int, sortBy, sortDir string) ([]model.Vehicle, int, error) {
	var clauses []string
	var args []any

	add := func(format string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}

	if f.Name != nil {
		add(`name ILIKE '%%' || $%d || '%%'`, *f.Name)
	}
	if f.Brand != nil {
		add(`brand ILIKE '%%' || $%d || '%%'`, *f.Brand)
	}
	if f.Model != nil {
		add(`model ILIKE '%%' || $%d || '%%'`, *f.Model)
	}
	if f.MinPrice != nil {
		add(`price >= $%d`, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add(`price <= $%d`, *f.MaxPrice)
	}
	if f.Type != nil {
		add(`vehicle_type = $%d`, *f.Type)
	}
	if f.FuelType != nil {
		add(`fuel_type = $%d`, *f.FuelType)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	sortCol, ok := vehicleSortColumns[sortBy]
	if !ok {
		sortCol = "id"
	}
	// Any value other than "desc" sorts ascending, case ignored.
	if strings.EqualFold(sortDir, "desc") {
		sortDir = "desc"
	} else {
		sortDir = "asc"
	}

	query := fmt.Sprintf(`SELECT %s FROM vehicles%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		vehicleColumns, where, sortCol, sortDir, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, nil
}

// GetForUpdate locks the vehicle row for the duration of the transaction so
// concurrent orders against the same vehicle serialize.
func (r *pgVehicleRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := scanVehicle(tx.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id), v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock vehicle: %w", err)
	}
	return v, nil
}

func (r *pgVehicleRepo) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	ct, err := tx.Exec(ctx,
		`UPDATE vehicles SET quantity_available = quantity_available - $2, updated_at = NOW()
		 WHERE id = $1 AND quantity_available >= $2`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("insufficient stock for vehicle %s", id)
	}
	return nil
}
