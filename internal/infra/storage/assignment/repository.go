package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/psqlbuilder"
)

const tableAssignments = "agent_assignments"

var assignmentColumns = []string{
	"id",
	"agent_id",
	"car_id",
	"booking_number",
	"assign_for",
	"assign_for_receive",
	"status",
	"trip_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий назначений агентов.
// Флаги ролей на бронировании главные, строки здесь только детализация.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает строку назначения
func (r *Repository) Create(ctx context.Context, a *domain.AgentAssignment) (*domain.AgentAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAssignments).
		Columns("agent_id", "car_id", "booking_number", "assign_for", "assign_for_receive", "status", "trip_status").
		Values(a.AgentID, a.CarID, a.BookingNumber, string(a.AssignFor), a.AssignForReceive, string(a.Status), string(a.TripStatus)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// ListByBooking возвращает все строки назначений бронирования
func (r *Repository) ListByBooking(ctx context.Context, bookingNumber int64) ([]*domain.AgentAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(assignmentColumns...).
		From(tableAssignments).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	assignments := make([]*domain.AgentAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return assignments, nil
}

// GetByBookingAndAgent ищет строку агента на бронировании
func (r *Repository) GetByBookingAndAgent(ctx context.Context, bookingNumber, agentID int64) (*domain.AgentAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(assignmentColumns...).
		From(tableAssignments).
		Where(squirrel.Eq{"booking_number": bookingNumber, "agent_id": agentID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingAndAgent - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAssignment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingAndAgent - scan row: %v", ErrScanRow, err)
	}

	return a, nil
}

// MarkReceive отмечает, что агент строки взял и роль receive (без новой строки)
func (r *Repository) MarkReceive(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAssignments).
		Set("assign_for_receive", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReceive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReceive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReceive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// SyncTripStatus зеркалирует статус бронирования во все его назначения
func (r *Repository) SyncTripStatus(ctx context.Context, bookingNumber int64, status domain.TripStatus) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAssignments).
		Set("trip_status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SyncTripStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SyncTripStatus - execute update: %v", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

// UpdateStatusForRole меняет прогресс агента, отвечающего за роль.
// Строка с assign_for_receive=true отвечает и за receive.
func (r *Repository) UpdateStatusForRole(ctx context.Context, bookingNumber int64, role domain.Role, status domain.AssignmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var roleCond squirrel.Sqlizer = squirrel.Eq{"assign_for": string(role)}
	if role == domain.RoleReceive {
		roleCond = squirrel.Or{
			squirrel.Eq{"assign_for": string(role)},
			squirrel.Eq{"assign_for_receive": true},
		}
	}

	query, args, err := psqlbuilder.Update(tableAssignments).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_number": bookingNumber}).
		Where(roleCond).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusForRole - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatusForRole - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignment(row rowScanner) (*domain.AgentAssignment, error) {
	var a domain.AgentAssignment
	var assignFor, status, tripStatus string

	err := row.Scan(
		&a.ID,
		&a.AgentID,
		&a.CarID,
		&a.BookingNumber,
		&assignFor,
		&a.AssignForReceive,
		&status,
		&tripStatus,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.AssignFor = domain.Role(assignFor)
	a.Status = domain.AssignmentStatus(status)
	a.TripStatus = domain.TripStatus(tripStatus)

	return &a, nil
}
