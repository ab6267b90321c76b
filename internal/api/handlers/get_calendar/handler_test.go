package get_calendar

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_calendar"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *getCalendar.Request
}

func (f *fakeUseCase) Execute(req *getCalendar.Request) *getCalendar.Response {
	f.got = req
	return &getCalendar.Response{Month: "2025-02"}
}

func TestHandle(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	session := domain.Session{UserID: uuid.New(), Role: domain.RoleUser}

	call := func(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(middleware.WithSession(req.Context(), session))
		w := httptest.NewRecorder()
		NewHandler(uc, seoul, nopLogger{}).Handle(w, req)
		return w
	}

	t.Run("month param", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := call(uc, "/api/v1/calendar?month=2025-02")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, seoul), uc.got.Month)
		assert.Equal(t, session, uc.got.Session)
	})

	t.Run("default month", func(t *testing.T) {
		uc := &fakeUseCase{}
		require.Equal(t, http.StatusOK, call(uc, "/api/v1/calendar").Code)
		assert.True(t, uc.got.Month.IsZero())
	})

	t.Run("bad month", func(t *testing.T) {
		uc := &fakeUseCase{}
		assert.Equal(t, http.StatusBadRequest, call(uc, "/api/v1/calendar?month=2025-13").Code)
		assert.Nil(t, uc.got)
	})
}
