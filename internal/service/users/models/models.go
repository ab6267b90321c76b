package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

// Request модели

// SignUpRequest регистрация
type SignUpRequest struct {
	LoginID          string `json:"loginId" validate:"required,min=3"`
	Password         string `json:"password" validate:"required,min=8,alphanum,hasletter,hasdigit"`
	PasswordConfirm  string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Name             string `json:"name" validate:"required,notblank,max=50"`
	Department       string `json:"department" validate:"required"`
	CustomDepartment string `json:"customDepartment" validate:"max=50"`
}

// LoginRequest вход
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest создание пользователя администратором
type CreateUserRequest struct {
	LoginID          string `json:"loginId" validate:"required,min=3"`
	Password         string `json:"password" validate:"required,min=8,alphanum,hasletter,hasdigit"`
	Name             string `json:"name" validate:"required,notblank,max=50"`
	Department       string `json:"department" validate:"required"`
	CustomDepartment string `json:"customDepartment" validate:"max=50"`
	Role             string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest изменение пользователя администратором.
// Пустой пароль оставляет текущий.
type UpdateUserRequest struct {
	Name             string `json:"name" validate:"required,notblank,max=50"`
	Department       string `json:"department" validate:"required"`
	CustomDepartment string `json:"customDepartment" validate:"max=50"`
	Password         string `json:"password" validate:"omitempty,min=8,alphanum,hasletter,hasdigit"`
}

const msgCustomDept = "소속명을 입력해주세요"

// Лимиты в тегах validate совпадают с domain.Min*/Max*Length
var (
	msgLoginIDShort = fmt.Sprintf("사용자 ID는 최소 %d자 이상이어야 합니다", domain.MinLoginIDLength)
	msgPasswordWeak = fmt.Sprintf("비밀번호는 최소 %d자 이상, 영문과 숫자를 포함해야 합니다", domain.MinPasswordLength)
	msgNameTooLong  = fmt.Sprintf("담당자명은 %d자 이내로 입력해주세요", domain.MaxNameLength)
)

// SignUpMessages сообщения валидации регистрации
var SignUpMessages = validation.Messages{
	"loginId.required":         "사용자 ID를 입력해주세요",
	"loginId":                  msgLoginIDShort,
	"password.required":        "비밀번호를 입력해주세요",
	"password":                 msgPasswordWeak,
	"passwordConfirm.required": "비밀번호 확인을 입력해주세요",
	"passwordConfirm":          "비밀번호가 일치하지 않습니다",
	"name.max":                 msgNameTooLong,
	"name":                     "담당자명을 입력해주세요",
	"department":               "소속/부서를 입력해주세요",
	"customDepartment":         msgCustomDept,
}

// LoginMessages сообщения валидации входа
var LoginMessages = validation.Messages{
	"loginId":  "사용자 ID를 입력해주세요",
	"password": "비밀번호를 입력해주세요",
}

// AdminMessages сообщения валидации форм администратора
var AdminMessages = validation.Messages{
	"loginId.required":  "사용자 ID를 입력해주세요",
	"loginId":           msgLoginIDShort,
	"password.required": "비밀번호를 입력해주세요",
	"password":          msgPasswordWeak,
	"name.max":          msgNameTooLong,
	"name":              "담당자명을 입력해주세요",
	"department":        "소속/부서를 선택해주세요",
	"customDepartment":  msgCustomDept,
	"role":              "권한을 선택해주세요",
}

// Response модели

// UserResponse данные пользователя без хеша пароля
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	LoginID    string     `json:"loginId"`
	Name       string     `json:"name"`
	Department string     `json:"department"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"` // nil для администраторов
	Expired    bool       `json:"expired"`
}

// LoginResponse токен сессии
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserListResponse список пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(u *domain.User, now time.Time, ttlMonths int) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		LoginID:    u.LoginID,
		Name:       u.Name,
		Department: u.Department.String(),
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
		Expired:    u.IsExpired(now, ttlMonths),
	}
	if expiresAt, ok := u.ExpiresAt(ttlMonths); ok {
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
