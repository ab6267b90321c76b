// Package validation проверка struct-тегов go-playground/validator с пользовательскими сообщениями
package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages сообщения об ошибках. Ключ "field.tag" имеет приоритет над "field".
type Messages map[string]string

// Validator обертка над *validator.Validate
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор; имена полей берутся из json-тегов
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("hasletter", HasLetter)
	_ = v.RegisterValidation("hasdigit", HasDigit)
	_ = v.RegisterValidation("notblank", NotBlank)

	return &Validator{validate: v}
}

// RegisterValidation добавляет пользовательский тег
func (v *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// Struct проверяет s и возвращает поле -> сообщение. nil, если ошибок нет.
func (v *Validator) Struct(s interface{}, messages Messages) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := fields[field]; exists {
			continue
		}
		fields[field] = messages.lookup(field, fe.Tag())
	}
	return fields, nil
}

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return field + ": " + tag
}

// HasLetter хотя бы одна латинская буква
func HasLetter(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// HasDigit хотя бы одна цифра
func HasDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// NotBlank строка не пуста после удаления пробелов
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
