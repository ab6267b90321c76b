package create_reservation

import "errors"

var (
	// ErrUnauthorized возвращается без сессии вызывающего
	ErrUnauthorized = errors.New("create_reservation: session required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
