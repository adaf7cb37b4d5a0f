package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// ErrTrailingData is returned by DecodeJSON when the body holds more than one JSON value.
var ErrTrailingData = errors.New("request body must contain a single JSON value")

// Validate is the shared validator instance. Field names in validation errors
// are reported using their JSON names.
var Validate = newValidator()

// now is replaced in tests that need a fixed clock for the future tag.
var now = time.Now

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// ALLOW-PANIC: tag registration only fails on programmer error
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("future", inFuture); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("taskstatus", taskStatus); err != nil {
		panic(err)
	}
	return v
}

// notBlank rejects strings that are empty once whitespace is trimmed.
// Nil pointers pass; pair the tag with required when presence matters.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return true
}

// inFuture accepts time values strictly after the current instant.
func inFuture(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanInterface() {
		return false
	}
	switch v := field.Interface().(type) {
	case time.Time:
		return v.After(now())
	case interface{ Time() time.Time }:
		return v.Time().After(now())
	default:
		return false
	}
}

// taskStatus accepts the exact status tokens of domain.TaskStatus.
func taskStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseTaskStatus(fl.Field().String())
	return err == nil
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return Validate.Struct(v)
}
