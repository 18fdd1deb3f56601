package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetBoarding-BookingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"service_id",
	"start_date",
	"end_date",
	"quantity",
	"animals",
	"contact_name",
	"contact_email",
	"contact_phone",
	"arrival_time",
	"departure_time",
	"sterilized",
	"total",
	"payment_ref",
	"payment_id",
	"payment_status",
	"payment_error",
	"status",
	"cancellation_token",
	"rejection_reason",
	"cancellation_reason",
	"refund_amount",
	"refund_id",
	"refund_error",
	"confirmed_at",
	"rejected_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	animals, err := json.Marshal(booking.Animals)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal animals: %v", ErrEncodeAnimals, err)
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"service_id",
			"start_date",
			"end_date",
			"quantity",
			"animals",
			"contact_name",
			"contact_email",
			"contact_phone",
			"arrival_time",
			"departure_time",
			"sterilized",
			"total",
			"payment_ref",
			"payment_id",
			"payment_status",
			"status",
		).
		Values(
			booking.ServiceID,
			booking.StartDate,
			booking.EndDate,
			booking.Quantity,
			animals,
			booking.Contact.Name,
			booking.Contact.Email,
			booking.Contact.Phone,
			booking.ArrivalTime,
			booking.DepartureTime,
			booking.Sterilized,
			booking.Total,
			booking.PaymentRef,
			booking.PaymentID,
			booking.PaymentStatus,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		// ошибку сериализации не прячем: по ней строгий режим отличает конфликт вместимости
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Update сохраняет изменяемые поля бронирования (статус, оплата, причины, возврат, отметки времени)
// Даты, состав и сумма после создания не меняются
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", booking.Status).
		Set("payment_ref", booking.PaymentRef).
		Set("payment_id", booking.PaymentID).
		Set("payment_status", booking.PaymentStatus).
		Set("payment_error", booking.PaymentError).
		Set("cancellation_token", booking.CancellationToken).
		Set("rejection_reason", booking.RejectionReason).
		Set("cancellation_reason", booking.CancellationReason).
		Set("refund_amount", booking.RefundAmount).
		Set("refund_id", booking.RefundID).
		Set("refund_error", booking.RefundError).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("rejected_at", booking.RejectedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

// Find возвращает бронирования по фильтру
//
// Диапазон дат включительный: бронирование попадает в выборку, если [start_date, end_date]
// пересекается с [StartDate, EndDate]. Пустой Statuses означает любые статусы.
// При фильтре по email сортировка от новых к старым, иначе по дате заезда.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": domain.DateOnly(*filter.EndDate)})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	if filter.Email != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Expr("LOWER(contact_email) = LOWER(?)", *filter.Email)).
			OrderBy("created_at DESC", "id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_date ASC", "id ASC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindInRange возвращает бронирования с указанными статусами, пересекающие диапазон [start, end]
func (r *Repository) FindInRange(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	return r.Find(ctx, domain.BookingsFilter{
		StartDate: &start,
		EndDate:   &end,
		Statuses:  statuses,
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		animals              []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Quantity,
		&animals,
		&booking.Contact.Name,
		&booking.Contact.Email,
		&booking.Contact.Phone,
		&booking.ArrivalTime,
		&booking.DepartureTime,
		&booking.Sterilized,
		&booking.Total,
		&booking.PaymentRef,
		&booking.PaymentID,
		&booking.PaymentStatus,
		&booking.PaymentError,
		&booking.Status,
		&booking.CancellationToken,
		&booking.RejectionReason,
		&booking.CancellationReason,
		&booking.RefundAmount,
		&booking.RefundID,
		&booking.RefundError,
		&booking.ConfirmedAt,
		&booking.RejectedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(animals) > 0 {
		if err := json.Unmarshal(animals, &booking.Animals); err != nil {
			return nil, fmt.Errorf("decode animals: %v", err)
		}
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
