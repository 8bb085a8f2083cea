package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// bookingColumns порядок колонок совпадает с scanBooking
var bookingColumns = []string{
	"id",
	"booking_number",
	"car_id",
	"user_id",
	"company_id",
	"from_time",
	"to_time",
	"days",
	"extended_days",
	"booking_rent",
	"total_booking_amount",
	"deposit",
	"vat",
	"coupon",
	"trip_status",
	"agent_assign_for_handover",
	"handover_by_agent_id",
	"agent_assign_for_receive",
	"receive_by_agent_id",
	"delivery_address",
	"delivery_time",
	"cancel_date",
	"cancel_reason",
	"cancellation_charge",
	"refund_amount",
	"created_at",
	"updated_at",
}

// returningBookingColumns суффикс RETURNING для UPDATE ... RETURNING
var returningBookingColumns = "RETURNING " + strings.Join(bookingColumns, ", ")

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockCar берёт транзакционную advisory-блокировку на автомобиль.
// Сериализует создание и продление бронирований одного автомобиля.
// Вне транзакции блокировка снимается сразу после запроса, поэтому
// вызывать только внутри txmanager.Do*.
func (r *Repository) LockCar(ctx context.Context, carID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", carID); err != nil {
		return fmt.Errorf("%w: LockCar - execute lock: %v", ErrExecQuery, err)
	}
	return nil
}

// CreateIfAvailable вставляет бронирование одной условной записью:
// INSERT ... SELECT ... WHERE NOT EXISTS (пересекающееся активное бронирование).
// Если окно занято, строка не вставляется и возвращается ErrWindowOverlap.
func (r *Repository) CreateIfAvailable(ctx context.Context, booking *domain.Booking, boundary domain.BoundaryPolicy) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := psqlbuilder.Subquery().
		Column("?::bigint", booking.BookingNumber).
		Column("?::bigint", booking.CarID).
		Column("?::bigint", booking.UserID).
		Column("?::bigint", booking.CompanyID).
		Column("?::timestamptz", booking.FromTime).
		Column("?::timestamptz", booking.ToTime).
		Column("?::int", booking.Days).
		Column("?::numeric", booking.BookingRent).
		Column("?::numeric", booking.TotalBookingAmount).
		Column("?::numeric", booking.Deposit).
		Column("?::numeric", booking.VAT).
		Column("?::numeric", booking.Coupon).
		Column("?::varchar", string(booking.TripStatus)).
		Column("?::text", booking.DeliveryAddress).
		Column("?::timestamptz", booking.DeliveryTime).
		Where(notExistsOverlap(booking.CarID, booking.FromTime, booking.ToTime, nil, boundary))

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"booking_number",
			"car_id",
			"user_id",
			"company_id",
			"from_time",
			"to_time",
			"days",
			"booking_rent",
			"total_booking_amount",
			"deposit",
			"vat",
			"coupon",
			"trip_status",
			"delivery_address",
			"delivery_time",
		).
		Select(values).
		Suffix(returningBookingColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAvailable - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAvailable - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByNumber получает бронирование по номеру.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_number": bookingNumber})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindOverlapping возвращает активные бронирования автомобиля, пересекающие окно [from, to].
// excludeNumber исключает само продлеваемое бронирование.
// Результат отсортирован по from_time, первым идёт ближайший конфликт.
func (r *Repository) FindOverlapping(ctx context.Context, carID int64, from, to time.Time, excludeNumber *int64, boundary domain.BoundaryPolicy) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.NotEq{"trip_status": domain.StatusStrings(domain.InactiveStatuses)}).
		Where(overlapCondition(from, to, boundary)).
		OrderBy("from_time ASC")

	if excludeNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"booking_number": *excludeNumber})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExtendParams данные продления бронирования
type ExtendParams struct {
	CarID     int64
	FromTime  time.Time
	NewToTime time.Time
	AddDays   int
	NewTotal  float64
	Boundary  domain.BoundaryPolicy
}

// Extend продлевает бронирование в статусе inprogress.
// extended_days накапливается, to_time и total_booking_amount заменяются.
// Запись условная: статус inprogress и отсутствие пересечений с другими
// активными бронированиями проверяются в том же UPDATE.
func (r *Repository) Extend(ctx context.Context, bookingNumber int64, params ExtendParams) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("to_time", params.NewToTime).
		Set("extended_days", squirrel.Expr("extended_days + ?", params.AddDays)).
		Set("total_booking_amount", params.NewTotal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(squirrel.Eq{"trip_status": string(domain.TripStatusInProgress)}).
		Where(notExistsOverlap(params.CarID, params.FromTime, params.NewToTime, &bookingNumber, params.Boundary)).
		Suffix(returningBookingColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Extend - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Extend - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// CancelParams данные отмены бронирования
type CancelParams struct {
	CancelDate         time.Time
	Reason             *string
	CancellationCharge float64
	RefundAmount       float64
}

// Cancel отменяет бронирование, если оно в статусе upcoming или inprogress.
// Повторная отмена возвращает ErrStatusMismatch.
func (r *Repository) Cancel(ctx context.Context, bookingNumber int64, params CancelParams) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellable := []string{string(domain.TripStatusUpcoming), string(domain.TripStatusInProgress)}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("trip_status", string(domain.TripStatusCancelled)).
		Set("cancel_date", params.CancelDate).
		Set("cancel_reason", params.Reason).
		Set("cancellation_charge", params.CancellationCharge).
		Set("refund_amount", params.RefundAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(squirrel.Eq{"trip_status": cancellable}).
		Suffix(returningBookingColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// UpdateStatus переводит бронирование из current в next (compare-and-set по статусу)
func (r *Repository) UpdateStatus(ctx context.Context, bookingNumber int64, current, next domain.TripStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("trip_status", string(next)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(squirrel.Eq{"trip_status": string(current)}).
		Suffix(returningBookingColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// UpdateDelivery меняет адрес и время подачи, не трогая trip_status.
// Завершённые и отменённые бронирования не изменяются.
func (r *Repository) UpdateDelivery(ctx context.Context, bookingNumber int64, address *string, deliveryTime *time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(squirrel.NotEq{"trip_status": domain.StatusStrings(domain.InactiveStatuses)}).
		Suffix(returningBookingColumns)

	if address != nil {
		updateBuilder = updateBuilder.Set("delivery_address", *address)
	}
	if deliveryTime != nil {
		updateBuilder = updateBuilder.Set("delivery_time", *deliveryTime)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDelivery - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDelivery - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// ClaimRole атомарно занимает роль: флаг false -> true и привязка агента.
// Возвращает false, если флаг уже был выставлен (роль занята) или бронирования нет.
func (r *Repository) ClaimRole(ctx context.Context, bookingNumber int64, role domain.Role, agentID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	flagColumn, agentColumn, err := roleColumns(role)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set(flagColumn, true).
		Set(agentColumn, agentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(squirrel.Eq{flagColumn: false}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ClaimRole - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ClaimRole - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ClaimRole - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// List возвращает страницу бронирований по типизированному запросу
func (r *Repository) List(ctx context.Context, q domain.BookingQuery) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	selectBuilder := applyFilters(psqlbuilder.Select(bookingColumns...).From(tableBookings), q).
		OrderBy(fmt.Sprintf("%s %s", q.SortBy, direction), "booking_number "+direction).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Count возвращает количество бронирований по тем же фильтрам, что и List.
// Сортировка и пагинация игнорируются.
func (r *Repository) Count(ctx context.Context, q domain.BookingQuery) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilters(psqlbuilder.Select("COUNT(*)").From(tableBookings), q).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

func applyFilters(selectBuilder squirrel.SelectBuilder, q domain.BookingQuery) squirrel.SelectBuilder {
	if q.CarID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"car_id": *q.CarID})
	}
	if q.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *q.UserID})
	}
	if q.CompanyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"company_id": *q.CompanyID})
	}
	if q.AgentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"handover_by_agent_id": *q.AgentID},
			squirrel.Eq{"receive_by_agent_id": *q.AgentID},
		})
	}
	if len(q.TripStatuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"trip_status": domain.StatusStrings(q.TripStatuses)})
	}
	if q.FromAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"from_time": *q.FromAfter})
	}
	if q.FromBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"from_time": q.FromBefore.AddDate(0, 0, 1)})
	}
	return selectBuilder
}

// overlapCondition условие пересечения существующего окна с [from, to]
func overlapCondition(from, to time.Time, boundary domain.BoundaryPolicy) squirrel.Sqlizer {
	if boundary == domain.BoundaryExclusive {
		return squirrel.And{
			squirrel.Lt{"from_time": to},
			squirrel.Gt{"to_time": from},
		}
	}
	return squirrel.And{
		squirrel.LtOrEq{"from_time": to},
		squirrel.GtOrEq{"to_time": from},
	}
}

// notExistsOverlap NOT EXISTS (активное бронирование автомобиля, пересекающее окно)
func notExistsOverlap(carID int64, from, to time.Time, excludeNumber *int64, boundary domain.BoundaryPolicy) squirrel.Sqlizer {
	sub := psqlbuilder.Subquery("1").
		From(tableBookings).
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.NotEq{"trip_status": domain.StatusStrings(domain.InactiveStatuses)}).
		Where(overlapCondition(from, to, boundary))

	if excludeNumber != nil {
		sub = sub.Where(squirrel.NotEq{"booking_number": *excludeNumber})
	}

	return sub.Prefix("NOT EXISTS (").Suffix(")")
}

func roleColumns(role domain.Role) (flag string, agent string, err error) {
	switch role {
	case domain.RoleHandover:
		return "agent_assign_for_handover", "handover_by_agent_id", nil
	case domain.RoleReceive:
		return "agent_assign_for_receive", "receive_by_agent_id", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var tripStatus string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.CarID,
		&booking.UserID,
		&booking.CompanyID,
		&booking.FromTime,
		&booking.ToTime,
		&booking.Days,
		&booking.ExtendedDays,
		&booking.BookingRent,
		&booking.TotalBookingAmount,
		&booking.Deposit,
		&booking.VAT,
		&booking.Coupon,
		&tripStatus,
		&booking.AgentAssignForHandover,
		&booking.HandoverByAgentID,
		&booking.AgentAssignForReceive,
		&booking.ReceiveByAgentID,
		&booking.DeliveryAddress,
		&booking.DeliveryTime,
		&booking.CancelDate,
		&booking.CancelReason,
		&booking.CancellationCharge,
		&booking.RefundAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.TripStatus = domain.TripStatus(tripStatus)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует строки результата в список бронирований
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
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
