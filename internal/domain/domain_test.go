package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentVariant(t *testing.T) {
	known := ParseDepartment("CAM")
	k, ok := known.Known()
	require.True(t, ok)
	assert.Equal(t, DeptCAM, k)
	assert.False(t, known.IsOther())

	other := ParseDepartment("  청년부 ")
	_, ok = other.Known()
	assert.False(t, ok)
	assert.True(t, other.IsOther())
	assert.Equal(t, "청년부", other.String())

	assert.True(t, ParseDepartment("").IsZero())
}

func TestDepartmentRules(t *testing.T) {
	tests := []struct {
		dept    Department
		weekday time.Weekday
		nth     int
		color   string
	}{
		{Known(DeptClergy), time.Sunday, 2, "#FF6B6B"},
		{Known(DeptVisionBridge), time.Sunday, 3, "#4ECDC4"},
		{Known(DeptCAM), time.Sunday, 3, "#45B7D1"},
		{Known(DeptPneuma), time.Sunday, 3, "#96CEB4"},
		{Known(DeptGospel), time.Sunday, 3, "#FFEAA7"},
		{Known(DeptCharis), time.Sunday, 3, "#DDA15E"},
		{Known(DeptEtc), time.Wednesday, 3, "#B19CD9"},
		{Other("새가족부"), time.Wednesday, 3, "#B19CD9"},
	}

	for _, tt := range tests {
		t.Run(tt.dept.String(), func(t *testing.T) {
			rule := tt.dept.UnlockRule()
			assert.Equal(t, tt.weekday, rule.Weekday)
			assert.Equal(t, tt.nth, rule.Nth)
			assert.Equal(t, tt.color, tt.dept.Color())
		})
	}
}

func TestUnlockRuleDescription(t *testing.T) {
	assert.Equal(t, "매월 3번째 일요일에 다음 달 예약이 오픈됩니다", Known(DeptCAM).UnlockRule().Description())
	assert.Equal(t, "매월 2번째 일요일에 다음 달 예약이 오픈됩니다", Known(DeptClergy).UnlockRule().Description())
	assert.Equal(t, "매월 3번째 수요일에 다음 달 예약이 오픈됩니다", Other("x").UnlockRule().Description())
}

func TestDepartmentJSON(t *testing.T) {
	type payload struct {
		Department Department `json:"department"`
	}

	data, err := json.Marshal(payload{Department: Known(DeptGospel)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"department":"가스펠"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"department":"성가대"}`), &p))
	assert.True(t, p.Department.IsOther())
	assert.Equal(t, "성가대", p.Department.String())
}

func TestTimeRangeOverlaps(t *testing.T) {
	base := TimeRange{Start: "12:00", End: "13:00"}

	assert.False(t, base.Overlaps(TimeRange{Start: "13:00", End: "14:00"}), "touching end")
	assert.False(t, base.Overlaps(TimeRange{Start: "11:00", End: "12:00"}), "touching start")
	assert.True(t, base.Overlaps(TimeRange{Start: "12:30", End: "13:30"}))
	assert.True(t, base.Overlaps(TimeRange{Start: "11:00", End: "14:00"}))
	assert.True(t, base.Overlaps(base))

	assert.Equal(t, "10:30 ~ 11:30", TimeRange{Start: "10:30", End: "11:30"}.String())
}

func TestTimeRangeValidate(t *testing.T) {
	assert.NoError(t, TimeRange{Start: "10:00", End: "10:30"}.Validate())
	assert.ErrorIs(t, TimeRange{Start: "10:30", End: "10:30"}.Validate(), ErrInvalidTimeRange)
	assert.ErrorIs(t, TimeRange{Start: "11:00", End: "10:30"}.Validate(), ErrInvalidTimeRange)
	assert.Error(t, TimeRange{Start: "1000", End: "10:30"}.Validate())
}

func TestUserExpiry(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	user := &User{Role: RoleUser, CreatedAt: created}

	expiresAt, ok := user.ExpiresAt(DefaultAccountTTLMonths)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), expiresAt)

	assert.False(t, user.IsExpired(expiresAt, DefaultAccountTTLMonths))
	assert.True(t, user.IsExpired(expiresAt.Add(time.Second), DefaultAccountTTLMonths))

	admin := &User{Role: RoleAdmin, CreatedAt: created}
	_, ok = admin.ExpiresAt(DefaultAccountTTLMonths)
	assert.False(t, ok)
	assert.False(t, admin.IsExpired(created.AddDate(10, 0, 0), DefaultAccountTTLMonths))
}

func TestSessionCanModify(t *testing.T) {
	owner := uuid.New()

	assert.True(t, Session{UserID: owner, Role: RoleUser}.CanModify(owner))
	assert.False(t, Session{UserID: uuid.New(), Role: RoleUser}.CanModify(owner))
	assert.True(t, Session{UserID: uuid.New(), Role: RoleAdmin}.CanModify(owner))
	assert.False(t, Session{}.CanModify(uuid.Nil))
}

func TestFieldErrors(t *testing.T) {
	fields := FieldErrors{}
	assert.NoError(t, fields.Err())

	fields.Add("purpose", "예약 목적을 입력해주세요")
	fields.Add("purpose", "second message is ignored")

	err := fields.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	got, ok := FieldErrorsOf(err)
	require.True(t, ok)
	assert.Equal(t, "예약 목적을 입력해주세요", got["purpose"])
}

func TestSpaces(t *testing.T) {
	assert.Len(t, Spaces(), 10)
	assert.True(t, SpaceStillWaters.IsValid())
	assert.False(t, Space("Vision Factory 6").IsValid())
}

func TestDepartmentFromForm(t *testing.T) {
	d, err := DepartmentFromForm("프뉴마", "ignored")
	require.NoError(t, err)
	assert.Equal(t, Known(DeptPneuma), d)

	d, err = DepartmentFromForm("기타", " 새가족부 ")
	require.NoError(t, err)
	assert.Equal(t, "새가족부", d.String())
	assert.True(t, d.IsOther())

	_, err = DepartmentFromForm("기타", "  ")
	assert.ErrorIs(t, err, ErrCustomDepartmentRequired)

	_, err = DepartmentFromForm("", "")
	assert.ErrorIs(t, err, ErrDepartmentRequired)

	_, err = DepartmentFromForm("청년부", "")
	assert.ErrorIs(t, err, ErrDepartmentRequired)
}
