package types

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Defaulter is implemented by request payloads that carry server defaults.
type Defaulter interface {
	ApplyDefaults()
}

// ------------------------------
// Required-field validation
// ------------------------------

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names so messages match the payload the API sees.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Prepare applies defaults to req and checks its required fields. It returns
// a *errors.ValidationError naming every missing field, or nil.
func Prepare(operation string, req any) error {
	if d, ok := req.(Defaulter); ok {
		d.ApplyDefaults()
	}
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &clerrors.ValidationError{Operation: operation, Fields: fields}
}
