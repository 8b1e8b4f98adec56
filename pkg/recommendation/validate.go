package recommendation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

// validate is shared; the validator caches struct metadata.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
})

// validateStruct checks the validate tags of s and reports the first failing
// field as INVALID_REQUEST.
func validateStruct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid request", err)
	}

	fe := fieldErrs[0]
	return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, fieldMessage(fe),
		map[string]any{fe.Field(): fmt.Sprint(fe.Value())})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
