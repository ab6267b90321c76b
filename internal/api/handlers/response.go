// Package handlers общие функции разбора запросов и ответов HTTP API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

const maxBodyBytes = 1 << 20

const (
	MsgInternalError     = "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgInvalidRequest    = "잘못된 요청입니다"
	MsgValidationFailed  = "입력값을 확인해주세요"
	MsgLoginRequired     = "로그인이 필요합니다"
	MsgAdminOnly         = "관리자만 접근 가능합니다."
	MsgTooManyRequests   = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	MsgInvalidDate       = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	MsgDateInPast        = "지난 날짜는 예약할 수 없습니다"
	MsgBeyondHorizon     = "예약 가능 기간을 벗어난 날짜입니다"
	MsgNotYetUnlocked    = "아직 예약이 오픈되지 않은 날짜입니다"
	MsgReservationAccess = "본인의 예약만 수정 또는 삭제할 수 있습니다"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Conflicts []string          `json:"conflicts,omitempty"`
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет data в формате JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError детали ошибки не раскрываются клиенту
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternalError)
}

// RespondValidation 400 с сообщениями по полям
func RespondValidation(w http.ResponseWriter, fields domain.FieldErrors) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Message: MsgValidationFailed, Fields: fields})
}

// RespondConflict 409 со списком занятых диапазонов
func RespondConflict(w http.ResponseWriter, ce *domain.ConflictError) {
	conflicts := make([]string, 0, len(ce.Overlapping))
	for _, r := range ce.Overlapping {
		conflicts = append(conflicts, r.String())
	}
	RespondJSON(w, http.StatusConflict, ErrorResponse{Message: ce.Error(), Conflicts: conflicts})
}

// RespondReservationError отвечает на ошибки формы, пересечения и окна бронирования.
// Возвращает false, если ошибка не из этого набора.
func RespondReservationError(w http.ResponseWriter, err error) bool {
	if fields, ok := domain.FieldErrorsOf(err); ok {
		RespondValidation(w, fields)
		return true
	}

	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		RespondConflict(w, ce)
		return true
	}

	switch {
	case errors.Is(err, window.ErrDateInPast):
		RespondBadRequest(w, MsgDateInPast)
	case errors.Is(err, window.ErrBeyondHorizon):
		RespondBadRequest(w, MsgBeyondHorizon)
	case errors.Is(err, window.ErrNotYetUnlocked):
		RespondForbidden(w, MsgNotYetUnlocked)
	default:
		return false
	}
	return true
}

// UUIDVar разбирает UUID из переменной пути
func UUIDVar(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// DateVar разбирает "YYYY-MM-DD" из переменной пути в локации loc
func DateVar(r *http.Request, name string, loc *time.Location) (time.Time, error) {
	return types.ParseDate(mux.Vars(r)[name], loc)
}
