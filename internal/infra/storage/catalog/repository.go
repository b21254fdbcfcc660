package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glamslot/booking-service/internal/domain"
	"github.com/glamslot/booking-service/pkg/dbmetrics"
	"github.com/glamslot/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и add-on'ов мастера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"artist_id",
		"name",
		"price",
		"duration_minutes",
		"requires_address",
		"requires_deposit",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ArtistID,
		&s.Name,
		&s.Price,
		&s.DurationMinutes,
		&s.RequiresAddress,
		&s.RequiresDeposit,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetAddOnsByIDs получает add-on'ы по списку ID
// Возвращает ErrAddOnNotFound, если хотя бы один ID не найден:
// бронирование с несуществующим add-on недопустимо
func (r *Repository) GetAddOnsByIDs(ctx context.Context, ids []int64) ([]*domain.AddOn, error) {
	if len(ids) == 0 {
		return []*domain.AddOn{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "name", "price", "duration_minutes", "created_at").
		From("service_addons").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	addOns := make([]*domain.AddOn, 0, len(ids))
	for rows.Next() {
		var a domain.AddOn
		var createdAt sql.NullTime

		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.Price, &a.DurationMinutes, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetAddOnsByIDs - scan row: %v", ErrScanRow, err)
		}

		a.CreatedAt = createdAt.Time
		addOns = append(addOns, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByIDs - rows error: %v", ErrScanRow, err)
	}

	if len(addOns) != len(ids) {
		return nil, ErrAddOnNotFound
	}

	return addOns, nil
}

// GetAddOnsByServiceID получает все add-on'ы услуги
func (r *Repository) GetAddOnsByServiceID(ctx context.Context, serviceID int64) ([]*domain.AddOn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "name", "price", "duration_minutes", "created_at").
		From("service_addons").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByServiceID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	addOns := make([]*domain.AddOn, 0)
	for rows.Next() {
		var a domain.AddOn
		var createdAt sql.NullTime

		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.Price, &a.DurationMinutes, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetAddOnsByServiceID - scan row: %v", ErrScanRow, err)
		}

		a.CreatedAt = createdAt.Time
		addOns = append(addOns, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddOnsByServiceID - rows error: %v", ErrScanRow, err)
	}

	return addOns, nil
}
