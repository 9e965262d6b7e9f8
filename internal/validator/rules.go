package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}

	// slug: URL path segment of a careers page.
	mustRegister("slug", validateSlug)
}

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return len(value) <= 80 && slugPattern.MatchString(value)
}
