package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// KnownDepartment one of the fixed affiliations
type KnownDepartment string

const (
	DeptClergy       KnownDepartment = "교역자"
	DeptVisionBridge KnownDepartment = "비전브릿지"
	DeptCAM          KnownDepartment = "CAM"
	DeptPneuma       KnownDepartment = "프뉴마"
	DeptGospel       KnownDepartment = "가스펠"
	DeptCharis       KnownDepartment = "카리스"
	DeptEtc          KnownDepartment = "기타"
)

var knownDepartments = []KnownDepartment{
	DeptClergy,
	DeptVisionBridge,
	DeptCAM,
	DeptPneuma,
	DeptGospel,
	DeptCharis,
	DeptEtc,
}

// KnownDepartments returns the fixed list in display order
func KnownDepartments() []KnownDepartment {
	return append([]KnownDepartment(nil), knownDepartments...)
}

// UnlockRule the nth occurrence of a weekday in the month before the booked month
type UnlockRule struct {
	Weekday time.Weekday
	Nth     int
}

var weekdayNames = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// Description e.g. "매월 3번째 일요일에 다음 달 예약이 오픈됩니다"
func (r UnlockRule) Description() string {
	return fmt.Sprintf("매월 %d번째 %s에 다음 달 예약이 오픈됩니다", r.Nth, weekdayNames[r.Weekday])
}

var defaultUnlockRule = UnlockRule{Weekday: time.Wednesday, Nth: 3}

var unlockRules = map[KnownDepartment]UnlockRule{
	DeptClergy:       {Weekday: time.Sunday, Nth: 2},
	DeptVisionBridge: {Weekday: time.Sunday, Nth: 3},
	DeptCAM:          {Weekday: time.Sunday, Nth: 3},
	DeptPneuma:       {Weekday: time.Sunday, Nth: 3},
	DeptGospel:       {Weekday: time.Sunday, Nth: 3},
	DeptCharis:       {Weekday: time.Sunday, Nth: 3},
	DeptEtc:          defaultUnlockRule,
}

const defaultColor = "#B19CD9"

var departmentColors = map[KnownDepartment]string{
	DeptClergy:       "#FF6B6B",
	DeptVisionBridge: "#4ECDC4",
	DeptCAM:          "#45B7D1",
	DeptPneuma:       "#96CEB4",
	DeptGospel:       "#FFEAA7",
	DeptCharis:       "#DDA15E",
	DeptEtc:          defaultColor,
}

// Department is either Known(KnownDepartment) or Other(free text).
// The zero value is empty and fails IsZero.
type Department struct {
	known KnownDepartment
	other string
}

// Known creates a department from the fixed list
func Known(k KnownDepartment) Department {
	return Department{known: k}
}

// Other creates a custom department entered as free text
func Other(name string) Department {
	return Department{other: strings.TrimSpace(name)}
}

// ParseDepartment maps a stored name to a department.
// Names outside the fixed list become Other.
func ParseDepartment(s string) Department {
	s = strings.TrimSpace(s)
	for _, k := range knownDepartments {
		if string(k) == s {
			return Known(k)
		}
	}
	return Other(s)
}

func (d Department) Known() (KnownDepartment, bool) {
	return d.known, d.known != ""
}

func (d Department) IsOther() bool {
	return d.known == "" && d.other != ""
}

func (d Department) IsZero() bool {
	return d.known == "" && d.other == ""
}

// String stored/display name
func (d Department) String() string {
	if d.known != "" {
		return string(d.known)
	}
	return d.other
}

// UnlockRule custom departments share the "기타" rule
func (d Department) UnlockRule() UnlockRule {
	if rule, ok := unlockRules[d.known]; ok {
		return rule
	}
	return defaultUnlockRule
}

// Color custom departments share the "기타" color
func (d Department) Color() string {
	if c, ok := departmentColors[d.known]; ok {
		return c
	}
	return defaultColor
}

func (d Department) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Department) UnmarshalText(text []byte) error {
	*d = ParseDepartment(string(text))
	return nil
}

// Scan реализует sql.Scanner
func (d *Department) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Department{}
	case string:
		*d = ParseDepartment(v)
	case []byte:
		*d = ParseDepartment(string(v))
	default:
		return fmt.Errorf("domain: cannot scan %T into Department", src)
	}
	return nil
}

// Value реализует driver.Valuer
func (d Department) Value() (driver.Value, error) {
	return d.String(), nil
}

var (
	// ErrDepartmentRequired department is empty or not in the fixed list
	ErrDepartmentRequired = errors.New("domain: department must be selected")

	// ErrCustomDepartmentRequired "기타" selected without free text
	ErrCustomDepartmentRequired = errors.New("domain: custom department name is required")
)

// DepartmentFromForm resolves a form selection. Selecting "기타" requires
// custom text, which becomes the stored department.
func DepartmentFromForm(selected, custom string) (Department, error) {
	d := ParseDepartment(selected)
	k, ok := d.Known()
	if !ok {
		return Department{}, ErrDepartmentRequired
	}
	if k != DeptEtc {
		return d, nil
	}
	if strings.TrimSpace(custom) == "" {
		return Department{}, ErrCustomDepartmentRequired
	}
	return ParseDepartment(custom), nil
}
