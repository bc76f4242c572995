package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"creativeflow/internal/util/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MessageProvider lets a request type override the message of a failing
// rule. Keys are "<jsonField>.<tag>", e.g. "email.email".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})

	return validate
}

// BindStrictJSON decodes the request body into obj rejecting unknown fields,
// trims string fields and validates obj.
func BindStrictJSON(ctx *gin.Context, obj any) error {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrBadRequest, err)
	}

	return DecodeStrict(body, obj)
}

func DecodeStrict(body []byte, obj any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(obj); err != nil {
		if field, ok := unknownField(err); ok {
			return app_errors.NewFieldError(field, "Unknown field")
		}

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return app_errors.NewFieldError(typeErr.Field, "Invalid value")
		}

		return fmt.Errorf("%w: %v", app_errors.ErrBadRequest, err)
	}

	if decoder.More() {
		return fmt.Errorf("%w: trailing data after JSON object", app_errors.ErrBadRequest)
	}

	TrimStrings(obj)

	return Struct(obj)
}

// Struct runs the validate tags of obj and converts failures into a
// ValidationError keyed by JSON field name.
func Struct(obj any) error {
	err := getValidator().Struct(obj)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := map[string]string{}
	if provider, ok := obj.(MessageProvider); ok {
		messages = provider.ValidationMessages()
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		name := fieldErr.Field()
		if _, exists := fields[name]; exists {
			continue
		}

		if message, ok := messages[name+"."+fieldErr.Tag()]; ok {
			fields[name] = message
			continue
		}

		fields[name] = defaultMessage(fieldErr)
	}

	return app_errors.NewValidationError(fields)
}

// TrimStrings trims surrounding whitespace of every string and *string field
// of the struct obj points to.
func TrimStrings(obj any) {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return
	}

	value = value.Elem()
	if value.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.String:
			field.SetString(strings.TrimSpace(field.String()))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(strings.TrimSpace(field.Elem().String()))
		}
	}
}

func defaultMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Field is required"
	case "email":
		return "Valid email is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldErr.Param())
	default:
		return "Invalid value"
	}
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "

	message := err.Error()
	if !strings.HasPrefix(message, prefix) {
		return "", false
	}

	return strings.Trim(strings.TrimPrefix(message, prefix), `"`), true
}
