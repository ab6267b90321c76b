package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда exclusion constraint отклонил пересекающееся бронирование
	ErrOverlap = errors.New("reservation.repository: reservation overlaps an existing one")

	// ErrInvalidTimeRange возвращается, когда check constraint отклонил end_time <= start_time
	ErrInvalidTimeRange = errors.New("reservation.repository: end time must be after start time")

	// ErrUserNotFound возвращается, когда владелец бронирования не существует
	ErrUserNotFound = errors.New("reservation.repository: owner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
