package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var movieSortSafelist = []string{"id", "title", "release_date", "-id", "-title", "-release_date"}

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("movie_sort", validateMovieSort)

	return validator
}

func validateMovieSort(fl validator.FieldLevel) bool {
	sort := fl.Field().String()

	for _, v := range movieSortSafelist {
		if sort == v {
			return true
		}
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "movie_sort":
		return fmt.Sprintf("must be one of %s", strings.Join(movieSortSafelist, ", "))
	default:
		return "is invalid"
	}
}
