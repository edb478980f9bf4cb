package billing

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"wyckoffpro-backend/internal/domain/plans"
)

// RegisterValidators teaches gin's binding engine the `plan` tag so a request
// naming a plan outside the closed catalog fails at bind time.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("plan", func(fl validator.FieldLevel) bool {
			_, ok := plans.ByID(fl.Field().String())
			return ok
		})
	}
}
