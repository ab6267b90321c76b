package get_day_grid

import "errors"

var (
	// ErrInvalidDate возвращается для пустой даты
	ErrInvalidDate = errors.New("get_day_grid: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_grid: internal error")
)
