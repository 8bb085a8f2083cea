package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	fleetClient "github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	userClient "github.com/m04kA/SMC-RentalDispatchService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

const metricsOperation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	sequence     SequenceGenerator
	resolver     AvailabilityResolver
	fleetClient  FleetServiceClient
	userClient   UserServiceClient
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sequence SequenceGenerator,
	resolver AvailabilityResolver,
	fleetClient FleetServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sequence:     sequence,
		resolver:     resolver,
		fleetClient:  fleetClient,
		userClient:   userClient,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются одной условной записью
// под advisory-блокировкой автомобиля.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, car=%d, from=%s, days=%d",
		req.UserID, req.CarID, req.FromDate.Format(domain.DateFormat), req.Days)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateFromDate(req.FromDate, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем автомобиль
	car, err := uc.fleetClient.GetCar(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, fleetClient.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	if !car.IsActive {
		uc.logger.Warn("CreateBooking: car id=%d is inactive", req.CarID)
		return nil, ErrCarInactive
	}

	// 3. Проверяем клиента (graceful degradation при недоступности UserService)
	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, req.UserID)
	switch {
	case errors.Is(err, userClient.ErrUserNotFound):
		uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	case errors.Is(err, userClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: user id=%d not verified: %v", req.UserID, err)
	case err != nil:
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	case user.IsBlocked:
		uc.logger.Warn("CreateBooking: user id=%d is blocked", req.UserID)
		return nil, ErrUserBlocked
	}

	booking := buildBooking(req, car)

	var result *domain.Booking

	// 4. Сериализуемая транзакция: блокировка автомобиля, номер, условная вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockCar(txCtx, req.CarID); err != nil {
			return fmt.Errorf("%w: failed to lock car: %v", ErrInternal, err)
		}

		number, err := uc.sequence.Next(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking number: %v", ErrInternal, err)
		}
		booking.BookingNumber = number

		created, err := uc.bookingRepo.CreateIfAvailable(txCtx, booking, uc.resolver.Boundary())
		if err != nil {
			if errors.Is(err, bookingRepo.ErrWindowOverlap) {
				return uc.conflictFor(txCtx, req)
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.metrics.IncBookingsCreated()
	uc.publisher.Publish(domain.NewBookingEvent(domain.EventBookingCreated, result, "",
		fmt.Sprintf("Booking #%d created for %s - %s", result.BookingNumber,
			result.FromTime.Format(domain.DateFormat), result.ToTime.Format(domain.DateFormat))))

	uc.logger.Info("CreateBooking: successfully created booking=%d", result.BookingNumber)
	return models.FromDomainBooking(result), nil
}

// conflictFor находит бронирование, с которым пересеклось окно
func (uc *UseCase) conflictFor(ctx context.Context, req *Request) error {
	conflict := &domain.ConflictError{Reason: "car is already booked for the requested window"}

	check, err := uc.resolver.Check(ctx, req.CarID, req.FromDate, req.Days)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve conflicting booking: %v", err)
		return conflict
	}
	conflict.Booking = check.Conflict
	return conflict
}

func (uc *UseCase) mapError(err error) error {
	if conflict, ok := domain.AsConflict(err); ok {
		uc.metrics.IncAvailabilityConflict(metricsOperation)
		uc.logger.Warn("CreateBooking: %v", conflict)
		return conflict
	}

	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		// параллельная запись по тому же автомобилю
		uc.metrics.IncAvailabilityConflict(metricsOperation)
		uc.logger.Warn("CreateBooking: serialization failure: %v", err)
		return &domain.ConflictError{Reason: "concurrent booking for the same car, retry"}
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("CreateBooking: transaction error: %v", err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	default:
		uc.logger.Error("CreateBooking: %v", err)
		return err
	}
}

// buildBooking собирает бронирование в статусе upcoming
func buildBooking(req *Request, car *fleetClient.Car) *domain.Booking {
	rent := car.DailyRate
	if req.BookingRent != nil {
		rent = *req.BookingRent
	}

	total := rent * float64(req.Days)
	if req.TotalBookingAmount != nil {
		total = *req.TotalBookingAmount
	}

	return &domain.Booking{
		CarID:              req.CarID,
		UserID:             req.UserID,
		CompanyID:          car.CompanyID,
		FromTime:           req.FromDate,
		ToTime:             domain.WindowEnd(req.FromDate, req.Days),
		Days:               req.Days,
		BookingRent:        rent,
		TotalBookingAmount: total,
		Deposit:            req.Deposit,
		VAT:                req.VAT,
		Coupon:             req.Coupon,
		TripStatus:         domain.TripStatusUpcoming,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryTime:       req.DeliveryTime,
	}
}
