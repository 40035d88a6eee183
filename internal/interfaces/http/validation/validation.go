package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"tutorhub.backend/internal/domain/entities"
	domainerrors "tutorhub.backend/internal/domain/errors"
)

var registerOnce sync.Once

// Register adds the domain tags to gin's binding validator. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("userrole", validateUserRole)
		_ = v.RegisterValidation("signuprole", validateSignupRole)
		_ = v.RegisterValidation("tuitiondecision", validateTuitionDecision)
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	return entities.UserRole(fl.Field().String()).Valid()
}

// admin is never self-assigned
func validateSignupRole(fl validator.FieldLevel) bool {
	role := entities.UserRole(fl.Field().String())
	return role == entities.UserRoleStudent || role == entities.UserRoleTutor
}

func validateTuitionDecision(fl validator.FieldLevel) bool {
	status := entities.TuitionStatus(fl.Field().String())
	return status == entities.TuitionStatusApproved || status == entities.TuitionStatusRejected
}

// BindError turns a binding failure into a 400 listing the failed fields.
func BindError(err error) *domainerrors.AppError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domainerrors.BadRequest("invalid request body")
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s failed on %s", lowerFirst(fe.Field()), fe.Tag()))
	}
	return domainerrors.BadRequest(strings.Join(parts, "; "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
