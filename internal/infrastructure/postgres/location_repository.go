package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL
// (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, row_num, bay, level, side, code, active, created_at, updated_at`

// Create persiste una ubicación nueva; el código legible se arma desde los
// componentes estructurales.
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	location.Code = entity.BuildLocationCode(location.Row, location.Bay, location.Level, location.Side)
	query := `
		INSERT INTO locations (row_num, bay, level, side, code, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		location.Row, location.Bay, location.Level, location.Side, location.Code, location.Active,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por id; nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	return r.get(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

// GetByCode obtiene una ubicación por su código legible; nil si no existe.
func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	return r.get(ctx, `SELECT `+locationColumns+` FROM locations WHERE code = $1`, code)
}

func (r *LocationRepo) get(ctx context.Context, query string, arg any) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&l.ID, &l.Row, &l.Bay, &l.Level, &l.Side, &l.Code, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista ubicaciones en orden estructural (fila, columna, nivel, lado).
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY row_num, bay, level, side LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Row, &l.Bay, &l.Level, &l.Side, &l.Code, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
