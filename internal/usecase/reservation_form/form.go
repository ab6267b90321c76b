// Package reservation_form проверка полей формы бронирования, общая для создания и изменения
package reservation_form

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

// Validator проверка struct-тегов
type Validator interface {
	Struct(s interface{}, messages validation.Messages) (map[string]string, error)
}

// Fields поля формы. Пустой отдел заменяется отделом вызывающего.
type Fields struct {
	Name          string `json:"name" validate:"required,notblank,max=50"`
	Department    string `json:"department" validate:"max=50"`
	Purpose       string `json:"purpose" validate:"required,notblank,max=200"`
	StartTime     string `json:"startTime" validate:"required"`
	EndTime       string `json:"endTime" validate:"required"`
	IsProvisional bool   `json:"isProvisional"`
}

const (
	msgStartTime = "시작 시간을 선택해주세요"
	msgEndTime   = "종료 시간을 선택해주세요"
	msgEndAfter  = "종료 시간은 시작 시간보다 이후여야 합니다"
)

// Лимиты в тегах validate совпадают с domain.Max*Length
var msgDepartment = fmt.Sprintf("소속은 %d자 이내로 입력해주세요", domain.MaxDeptLength)

// Messages сообщения валидации формы
var Messages = validation.Messages{
	"name.max":    fmt.Sprintf("담당자명은 %d자 이내로 입력해주세요", domain.MaxNameLength),
	"name":        "담당자명을 입력해주세요",
	"purpose.max": fmt.Sprintf("예약 목적은 %d자 이내로 입력해주세요", domain.MaxPurposeLength),
	"purpose":     "예약 목적을 입력해주세요",
	"startTime":   msgStartTime,
	"endTime":     msgEndTime,
	"department":  msgDepartment,
}

// Valid проверенные значения формы
type Valid struct {
	Range         domain.TimeRange
	Name          string
	Department    domain.Department
	Purpose       string
	IsProvisional bool
}

// Validate проверяет форму; ошибки полей собираются в domain.FieldErrors.
// extra дополняется ошибками вызывающего (дата, пространство).
func Validate(v Validator, f *Fields, fallbackDept domain.Department, extra domain.FieldErrors) (*Valid, error) {
	fields, err := v.Struct(f, Messages)
	if err != nil {
		return nil, err
	}

	errs := domain.FieldErrors{}
	for k, msg := range extra {
		errs.Add(k, msg)
	}
	for k, msg := range fields {
		errs.Add(k, msg)
	}

	var start, end types.TimeString
	if _, failed := errs["startTime"]; !failed {
		start, err = types.NewTimeStringFromString(f.StartTime)
		if err != nil || !domain.IsStartSlot(start) {
			errs.Add("startTime", msgStartTime)
		}
	}
	if _, failed := errs["endTime"]; !failed {
		end, err = types.NewTimeStringFromString(f.EndTime)
		if err != nil || !domain.IsEndSlot(end) {
			errs.Add("endTime", msgEndTime)
		}
	}
	_, startFailed := errs["startTime"]
	_, endFailed := errs["endTime"]
	if !startFailed && !endFailed && !start.IsBefore(end) {
		errs.Add("endTime", msgEndAfter)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	dept := domain.ParseDepartment(f.Department)
	if dept.IsZero() {
		dept = fallbackDept
	}

	return &Valid{
		Range:         domain.TimeRange{Start: start, End: end},
		Name:          strings.TrimSpace(f.Name),
		Department:    dept,
		Purpose:       strings.TrimSpace(f.Purpose),
		IsProvisional: f.IsProvisional,
	}, nil
}

// DefaultEndTime подставляет следующую границу после начала, если конец не задан
func DefaultEndTime(f *Fields) {
	if f.EndTime != "" || f.StartTime == "" {
		return
	}
	start, err := types.NewTimeStringFromString(f.StartTime)
	if err != nil {
		return
	}
	if next, ok := domain.NextBoundary(start); ok {
		f.EndTime = next.String()
	}
}
