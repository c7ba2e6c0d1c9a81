package validator

import (
	"reflect"

	"go-sales-api/internal/model"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Teach the validator to see FlexInt as a plain int (nil when the
	// client sent nothing parseable), so omitempty/gte/lte tags apply.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if f, ok := field.Interface().(model.FlexInt); ok {
			if !f.Set {
				return nil
			}
			return f.Value
		}
		return nil
	}, model.FlexInt{})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
