package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal validates through its float value so numeric rules
	// (min, max) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into req and runs validation,
// responding with a field-level error map on failure.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cuerpo de la petición inválido"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fields map[string]string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields = make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fmt.Sprintf("falla la regla '%s'", fe.Tag())
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewFieldErrors(fields))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP status and envelope.
func respondError(c *gin.Context, err error) {
	status := middleware.StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, apierror.New("error interno del servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
