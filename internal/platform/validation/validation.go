package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"petpals/internal/platform/apperr"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre JSON del campo.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return v
}

// Struct valida s y devuelve el primer fallo como apperr de validación.
// prefix reemplaza el nombre del tipo en el path (ej: "lostReport").
func Struct(s any, prefix string) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(prefix, "invalid input")
	}

	fe := verrs[0]
	return apperr.Validation(fieldPath(prefix, fe.Namespace()), message(fe))
}

func fieldPath(prefix, namespace string) string {
	// Namespace viene como "LostReport.lastSeenLocation"; descartamos el tipo raíz.
	parts := strings.SplitN(namespace, ".", 2)
	rest := namespace
	if len(parts) == 2 {
		rest = parts[1]
	}
	if prefix == "" {
		return rest
	}
	return prefix + "." + rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "datetime":
		return "must match format " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
