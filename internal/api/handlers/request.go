package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в ошибках используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError ошибки валидации по полям
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// DecodeAndValidate декодирует тело и валидирует его.
// Пишет 400 и возвращает false при ошибке.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, invalidBodyMsg string) bool {
	if err := DecodeJSON(r, dst); err != nil {
		RespondBadRequest(w, invalidBodyMsg)
		return false
	}

	if err := Validate(dst); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			RespondValidationError(w, invalidBodyMsg, ve.Fields)
			return false
		}
		RespondBadRequest(w, invalidBodyMsg)
		return false
	}

	return true
}
