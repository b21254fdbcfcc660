package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glamslot/booking-service/internal/domain"
	"github.com/glamslot/booking-service/pkg/dbmetrics"
	"github.com/glamslot/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий расписания мастера:
// окна работы, заблокированные интервалы и настройки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// --- Окна работы ---

// CreateWindow создает окно работы
// Проверка на пересечение с существующими окнами выполняется на уровне
// сервиса в транзакции; репозиторий только пишет
func (r *Repository) CreateWindow(ctx context.Context, window *domain.TimeWindow) (*domain.TimeWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("artist_id", "day", "start_minute", "end_minute").
		Values(window.ArtistID, window.Day, window.StartMinute, window.EndMinute).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time

	return window, nil
}

// GetWindowsByArtist получает все окна мастера, упорядоченные по дню и началу
func (r *Repository) GetWindowsByArtist(ctx context.Context, artistID int64) ([]*domain.TimeWindow, error) {
	return r.queryWindows(ctx, squirrel.Eq{"artist_id": artistID})
}

// GetWindowsByArtistAndDay получает окна мастера на конкретный день недели
// (Monday=0 .. Sunday=6)
// Внутри транзакции блокирует строки: окна участвуют в admission check
func (r *Repository) GetWindowsByArtistAndDay(ctx context.Context, artistID int64, day int) ([]*domain.TimeWindow, error) {
	return r.queryWindows(ctx, squirrel.Eq{"artist_id": artistID, "day": day})
}

func (r *Repository) queryWindows(ctx context.Context, where squirrel.Eq) ([]*domain.TimeWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "artist_id", "day", "start_minute", "end_minute", "created_at").
		From("availability_windows").
		Where(where).
		OrderBy("day ASC, start_minute ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: queryWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.TimeWindow, 0)
	for rows.Next() {
		var w domain.TimeWindow
		var createdAt sql.NullTime

		if err := rows.Scan(&w.ID, &w.ArtistID, &w.Day, &w.StartMinute, &w.EndMinute, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: queryWindows - scan row: %v", ErrScanRow, err)
		}

		w.CreatedAt = createdAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// GetWindowByID получает окно по ID
func (r *Repository) GetWindowByID(ctx context.Context, id int64) (*domain.TimeWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "artist_id", "day", "start_minute", "end_minute", "created_at").
		From("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowByID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.TimeWindow
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.ArtistID, &w.Day, &w.StartMinute, &w.EndMinute, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowByID - scan window: %v", ErrScanRow, err)
	}

	w.CreatedAt = createdAt.Time

	return &w, nil
}

// DeleteWindow удаляет окно работы
// Окна не изменяются in-place: только удаление и создание заново
func (r *Repository) DeleteWindow(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// --- Заблокированные интервалы ---

// CreateBlockedInterval создает заблокированный интервал
func (r *Repository) CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_intervals").
		Columns("artist_id", "blocked_date", "start_minute", "end_minute", "units").
		Values(block.ArtistID, block.Date, block.StartMinute, block.EndMinute, block.Units).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetBlockedIntervals получает заблокированные интервалы мастера на дату
// Внутри транзакции блокирует строки (FOR UPDATE): интервалы участвуют
// в admission check наравне с бронированиями
func (r *Repository) GetBlockedIntervals(ctx context.Context, artistID int64, date time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "artist_id", "blocked_date", "start_minute", "end_minute", "units", "created_at").
		From("blocked_intervals").
		Where(squirrel.Eq{"artist_id": artistID, "blocked_date": date}).
		OrderBy("start_minute ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedIntervals(rows)
}

// GetBlockedIntervalsFrom получает заблокированные интервалы мастера
// начиная с указанной даты (для экспорта данных слотов)
func (r *Repository) GetBlockedIntervalsFrom(ctx context.Context, artistID int64, from time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "artist_id", "blocked_date", "start_minute", "end_minute", "units", "created_at").
		From("blocked_intervals").
		Where(squirrel.Eq{"artist_id": artistID}).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		OrderBy("blocked_date ASC, start_minute ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervalsFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervalsFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedIntervals(rows)
}

// GetBlockedIntervalByID получает заблокированный интервал по ID
func (r *Repository) GetBlockedIntervalByID(ctx context.Context, id int64) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "artist_id", "blocked_date", "start_minute", "end_minute", "units", "created_at").
		From("blocked_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervalByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.BlockedInterval
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.ArtistID, &b.Date, &b.StartMinute, &b.EndMinute, &b.Units, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedIntervalByID - scan row: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time

	return &b, nil
}

// DeleteBlockedInterval удаляет заблокированный интервал
// Удаление свободное: admission check нужен только при создании
func (r *Repository) DeleteBlockedInterval(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// --- Настройки мастера ---

// GetSettings получает настройки мастера
func (r *Repository) GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("artist_id", "unit_count", "booking_month_limit", "cancel_cutoff_hours", "created_at", "updated_at").
		From("artist_settings").
		Where(squirrel.Eq{"artist_id": artistID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ArtistSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ArtistID,
		&s.UnitCount,
		&s.BookingMonthLimit,
		&s.CancelCutoffHours,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// UpsertSettings создает или обновляет настройки мастера
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("artist_settings").
		Columns("artist_id", "unit_count", "booking_month_limit", "cancel_cutoff_hours").
		Values(settings.ArtistID, settings.UnitCount, settings.BookingMonthLimit, settings.CancelCutoffHours).
		Suffix(`ON CONFLICT (artist_id) DO UPDATE SET
			unit_count = EXCLUDED.unit_count,
			booking_month_limit = EXCLUDED.booking_month_limit,
			cancel_cutoff_hours = EXCLUDED.cancel_cutoff_hours,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

func (r *Repository) scanBlockedIntervals(rows *sql.Rows) ([]*domain.BlockedInterval, error) {
	blocks := make([]*domain.BlockedInterval, 0)

	for rows.Next() {
		var b domain.BlockedInterval
		var createdAt sql.NullTime

		if err := rows.Scan(&b.ID, &b.ArtistID, &b.Date, &b.StartMinute, &b.EndMinute, &b.Units, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanBlockedIntervals - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedIntervals - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
