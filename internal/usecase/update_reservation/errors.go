package update_reservation

import "errors"

var (
	// ErrUnauthorized возвращается без сессии вызывающего
	ErrUnauthorized = errors.New("update_reservation: session required")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование чужое и вызывающий не администратор
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
