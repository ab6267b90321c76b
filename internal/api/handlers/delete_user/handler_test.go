package delete_user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/users"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f fakeService) Delete(context.Context, domain.Session, uuid.UUID) error {
	return f.err
}

func TestHandle(t *testing.T) {
	admin := domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name   string
		id     string
		err    error
		status int
		body   string
	}{
		{"deleted", uuid.NewString(), nil, http.StatusNoContent, ""},
		{"bad id", "not-a-uuid", nil, http.StatusBadRequest, ""},
		{"admin target", uuid.NewString(), users.ErrCannotDeleteAdmin, http.StatusForbidden, "관리자 계정은 삭제할 수 없습니다."},
		{"not found", uuid.NewString(), users.ErrUserNotFound, http.StatusNotFound, ""},
		{"not admin", uuid.NewString(), users.ErrForbidden, http.StatusForbidden, "관리자만 접근 가능합니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/api/v1/admin/users/{id}", NewHandler(fakeService{err: tt.err}, nopLogger{}).Handle)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/"+tt.id, nil)
			req = req.WithContext(middleware.WithSession(req.Context(), admin))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
		})
	}
}
