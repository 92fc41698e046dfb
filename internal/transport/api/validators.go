package api

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"

	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/groph-vending/internal/domain"
)

// validateRole проверяет что строка - одна из известных ролей. Регистр не важен,
// сравнение то же что и в domain.User.HasRole.
func validateRole(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, known := range []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin} {
		if domain.Role(str).Equal(known) {
			return true
		}
	}
	return false
}

func registerValidators() error {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if err := v.RegisterValidation("role", validateRole); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
