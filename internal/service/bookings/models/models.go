package models

import (
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// Request модели

// AdvanceStatusRequest запрос на перевод бронирования в следующий статус
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// ChangeDeliveryRequest запрос на изменение адреса и времени подачи
type ChangeDeliveryRequest struct {
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`
	DeliveryTime    *time.Time `json:"deliveryTime,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	BookingNumber int64  `json:"bookingNumber"`
	CarID         int64  `json:"carId"`
	UserID        int64  `json:"userId"`
	CompanyID     int64  `json:"companyId"`
	FromTime      string `json:"fromTime"` // "2026-05-01T10:00"
	ToTime        string `json:"toTime"`
	Days          int    `json:"days"`
	ExtendedDays  int    `json:"extendedDays"`

	BookingRent        float64 `json:"bookingRent"`
	TotalBookingAmount float64 `json:"totalBookingAmount"`
	Deposit            float64 `json:"deposit"`
	VAT                float64 `json:"vat"`
	Coupon             float64 `json:"coupon"`

	TripStatus string `json:"tripStatus"`

	AgentAssignForHandover bool   `json:"agentAssignForHandover"`
	HandoverByAgentID      *int64 `json:"handoverByAgentId,omitempty"`
	AgentAssignForReceive  bool   `json:"agentAssignForReceive"`
	ReceiveByAgentID       *int64 `json:"receiveByAgentId,omitempty"`

	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	DeliveryTime    *string `json:"deliveryTime,omitempty"` // ISO 8601 format

	CancelDate         *string  `json:"cancelDate,omitempty"` // ISO 8601 format
	CancelReason       *string  `json:"cancelReason,omitempty"`
	CancellationCharge *float64 `json:"cancellationCharge,omitempty"`
	RefundAmount       *float64 `json:"refundAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со страницей бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Page     int               `json:"page"`
}

// CountResponse количество бронирований по фильтрам
type CountResponse struct {
	Total int64 `json:"total"`
}

// AssignmentResponse строка назначения агента
type AssignmentResponse struct {
	ID               int64     `json:"id"`
	AgentID          int64     `json:"agentId"`
	CarID            int64     `json:"carId"`
	BookingNumber    int64     `json:"bookingNumber"`
	AssignFor        string    `json:"assignFor"`
	AssignForReceive bool      `json:"assignForReceive"`
	Status           string    `json:"status"`
	TripStatus       string    `json:"tripStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AssignmentListResponse назначения бронирования
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		BookingNumber:          b.BookingNumber,
		CarID:                  b.CarID,
		UserID:                 b.UserID,
		CompanyID:              b.CompanyID,
		FromTime:               b.FromTime.Format(domain.DateTimeFormat),
		ToTime:                 b.ToTime.Format(domain.DateTimeFormat),
		Days:                   b.Days,
		ExtendedDays:           b.ExtendedDays,
		BookingRent:            b.BookingRent,
		TotalBookingAmount:     b.TotalBookingAmount,
		Deposit:                b.Deposit,
		VAT:                    b.VAT,
		Coupon:                 b.Coupon,
		TripStatus:             string(b.TripStatus),
		AgentAssignForHandover: b.AgentAssignForHandover,
		HandoverByAgentID:      b.HandoverByAgentID,
		AgentAssignForReceive:  b.AgentAssignForReceive,
		ReceiveByAgentID:       b.ReceiveByAgentID,
		DeliveryAddress:        b.DeliveryAddress,
		CancelReason:           b.CancelReason,
		CancellationCharge:     b.CancellationCharge,
		RefundAmount:           b.RefundAmount,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}

	if b.DeliveryTime != nil {
		s := b.DeliveryTime.Format(time.RFC3339)
		resp.DeliveryTime = &s
	}
	if b.CancelDate != nil {
		s := b.CancelDate.Format(time.RFC3339)
		resp.CancelDate = &s
	}

	return resp
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, q domain.BookingQuery) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Limit:    q.Limit,
		Page:     q.Page,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainAssignment конвертирует назначение в DTO
func FromDomainAssignment(a *domain.AgentAssignment) *AssignmentResponse {
	if a == nil {
		return nil
	}

	return &AssignmentResponse{
		ID:               a.ID,
		AgentID:          a.AgentID,
		CarID:            a.CarID,
		BookingNumber:    a.BookingNumber,
		AssignFor:        string(a.AssignFor),
		AssignForReceive: a.AssignForReceive,
		Status:           string(a.Status),
		TripStatus:       string(a.TripStatus),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// FromDomainAssignments конвертирует назначения в DTO
func FromDomainAssignments(assignments []*domain.AgentAssignment) *AssignmentListResponse {
	resp := &AssignmentListResponse{
		Assignments: make([]AssignmentResponse, 0, len(assignments)),
	}

	for _, a := range assignments {
		resp.Assignments = append(resp.Assignments, *FromDomainAssignment(a))
	}

	return resp
}
