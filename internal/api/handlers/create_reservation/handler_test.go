package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
	createReservation "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*models.ReservationResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: uuid.New(), Date: req.Date.Format(domain.DateFormat), Space: req.Space}, nil
}

var seoul = time.FixedZone("KST", 9*60*60)

func serve(h *Handler, body string, session *domain.Session) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), *session))
	}
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandle(t *testing.T) {
	session := domain.Session{UserID: uuid.New(), Role: domain.RoleUser, Department: domain.Known(domain.DeptCAM)}
	body := `{"date":"2025-03-01","space":"푸른초장","name":"홍길동","purpose":"회의","startTime":"10:00","endTime":"11:00","isProvisional":true}`

	t.Run("created", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := serve(NewHandler(uc, seoul, nopLogger{}), body, &session)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, uc.got)
		assert.Equal(t, session, uc.got.Session)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, seoul), uc.got.Date)
		assert.Equal(t, "푸른초장", uc.got.Space)
		assert.Equal(t, "10:00", uc.got.Form.StartTime)
		assert.Equal(t, "11:00", uc.got.Form.EndTime)
		assert.True(t, uc.got.Form.IsProvisional)
	})

	t.Run("no session", func(t *testing.T) {
		w := serve(NewHandler(&fakeUseCase{}, seoul, nopLogger{}), body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := serve(NewHandler(uc, seoul, nopLogger{}), `{"date":"2025/03/01"}`, &session)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uc.got)
	})

	t.Run("conflict", func(t *testing.T) {
		uc := &fakeUseCase{err: &domain.ConflictError{Overlapping: []domain.TimeRange{{Start: "10:30", End: "11:30"}}}}
		w := serve(NewHandler(uc, seoul, nopLogger{}), body, &session)

		require.Equal(t, http.StatusConflict, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "해당 시간대에 이미 예약이 있습니다: 10:30 ~ 11:30", resp["message"])
	})

	t.Run("not yet unlocked", func(t *testing.T) {
		w := serve(NewHandler(&fakeUseCase{err: window.ErrNotYetUnlocked}, seoul, nopLogger{}), body, &session)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		uc := &fakeUseCase{err: domain.FieldErrors{"purpose": "예약 목적을 입력해주세요"}.Err()}
		w := serve(NewHandler(uc, seoul, nopLogger{}), body, &session)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "예약 목적을 입력해주세요")
	})

	t.Run("internal", func(t *testing.T) {
		w := serve(NewHandler(&fakeUseCase{err: createReservation.ErrInternal}, seoul, nopLogger{}), body, &session)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
