package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetBoarding-BookingService/pkg/psqlbuilder"
)

const tableHolds = "capacity_holds"

var holdColumns = []string{
	"id",
	"session_id",
	"service_id",
	"dates",
	"quantity",
	"status",
	"created_at",
	"expires_at",
}

// Repository репозиторий временных броней
// Даты хранятся массивом TEXT[] в формате YYYY-MM-DD
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория временных броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет временную бронь с заранее выданным ID
func (r *Repository) Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableHolds).
		Columns(
			"id",
			"session_id",
			"service_id",
			"dates",
			"quantity",
			"status",
			"created_at",
			"expires_at",
		).
		Values(
			hold.ID,
			hold.SessionID,
			hold.ServiceID,
			pq.Array(formatDates(hold.Dates)),
			hold.Quantity,
			hold.Status,
			hold.CreatedAt,
			hold.ExpiresAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return hold, nil
}

// FindActive возвращает неистёкшие временные брони на момент now
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) FindActive(ctx context.Context, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From(tableHolds).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.Hold, 0)
	for rows.Next() {
		hold, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindActive - scan row: %v", ErrScanRow, err)
		}
		holds = append(holds, hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindActive - rows error: %w", ErrScanRow, err)
	}

	return holds, nil
}

// Delete удаляет временную бронь
// Возвращает ErrHoldNotFound, если записи нет
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableHolds).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// DeleteBySession удаляет все временные брони сессии и возвращает их количество
func (r *Repository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	return r.deleteWhere(ctx, "DeleteBySession", squirrel.Eq{"session_id": sessionID})
}

// DeleteExpired удаляет брони, истёкшие к моменту now
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteWhere(ctx, "DeleteExpired", squirrel.LtOrEq{"expires_at": now})
}

func (r *Repository) deleteWhere(ctx context.Context, op string, pred squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableHolds).
		Where(pred).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.Hold, error) {
	var (
		hold  domain.Hold
		dates []string
	)

	err := row.Scan(
		&hold.ID,
		&hold.SessionID,
		&hold.ServiceID,
		pq.Array(&dates),
		&hold.Quantity,
		&hold.Status,
		&hold.CreatedAt,
		&hold.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	hold.Dates, err = parseDates(dates)
	if err != nil {
		return nil, err
	}

	return &hold, nil
}

func formatDates(dates []time.Time) []string {
	result := make([]string, len(dates))
	for i, d := range dates {
		result[i] = d.Format(domain.DateFormat)
	}
	return result
}

func parseDates(values []string) ([]time.Time, error) {
	result := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, v)
		}
		result = append(result, d)
	}
	return result, nil
}
