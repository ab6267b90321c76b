package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

var (
	// ErrDuplicateLoginID возвращается, когда login id уже занят
	ErrDuplicateLoginID = errors.New("users: login id already in use")

	// ErrUnknownLoginID возвращается при входе с незарегистрированным login id
	ErrUnknownLoginID = errors.New("users: unknown login id")

	// ErrWrongPassword возвращается при неверном пароле
	ErrWrongPassword = errors.New("users: wrong password")

	// ErrAccountExpired возвращается при входе в просроченный аккаунт
	ErrAccountExpired = errors.New("users: account expired")

	// ErrForbidden возвращается, когда операция доступна только администратору
	ErrForbidden = errors.New("users: admin only")

	// ErrCannotDeleteAdmin возвращается при попытке удалить администратора
	ErrCannotDeleteAdmin = errors.New("users: admin accounts cannot be deleted")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("users: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users: internal error")
)

// AccountExpiredError просроченный аккаунт с датой истечения
type AccountExpiredError struct {
	ExpiresAt time.Time
}

func (e *AccountExpiredError) Error() string {
	return fmt.Sprintf("계정 유효기간이 만료되었습니다. (만료일: %s)", e.ExpiresAt.Format(domain.DateFormat))
}

func (e *AccountExpiredError) Unwrap() error {
	return ErrAccountExpired
}
