package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование чужое и вызывающий не администратор
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrForbidden возвращается, когда операция доступна только администратору
	ErrForbidden = errors.New("reservations: admin only")

	// ErrSlotEmpty возвращается, когда в выбранном слоте нет бронирования
	ErrSlotEmpty = errors.New("reservations: slot is free")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
