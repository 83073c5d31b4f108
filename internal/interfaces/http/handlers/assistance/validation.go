package assistance

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "zelador/internal/domain/assistance/valueobjects"
)

// init registers the custom binding validations used by the request DTOs in
// this package. The status vocabulary lives in the domain layer; the binding
// tag delegates to it so the two never drift apart.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("assistancestatus", func(fl validator.FieldLevel) bool {
			return vo.Status(fl.Field().String()).IsValid()
		})
	}
}
