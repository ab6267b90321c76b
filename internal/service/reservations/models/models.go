package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Request модели

// ListAllRequest фильтры списка администратора
type ListAllRequest struct {
	Date   *time.Time
	UserID *uuid.UUID
}

// ResolveSlotRequest клик по слоту сетки
type ResolveSlotRequest struct {
	Date  time.Time
	Space string
	Time  string
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Date          string    `json:"date"`
	Space         string    `json:"space"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Purpose       string    `json:"purpose"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	Color         string    `json:"color"`
	IsProvisional bool      `json:"isProvisional"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// ResolveSlotResponse бронирование, которому принадлежит слот, и его начальный слот
type ResolveSlotResponse struct {
	Space       string              `json:"space"`
	StartTime   string              `json:"startTime"`
	Reservation ReservationResponse `json:"reservation"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		Date:          r.Date.Format(domain.DateFormat),
		Space:         string(r.Space),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Purpose:       r.Purpose,
		Name:          r.Name,
		Department:    r.Department.String(),
		Color:         r.Department.Color(),
		IsProvisional: r.IsProvisional,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReservations конвертирует список
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	resp.Total = len(resp.Reservations)
	return resp
}
