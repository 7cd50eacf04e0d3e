package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/union-tracker/internal/pkg/errors"
)

// sourceURLPattern accepts http(s) links with a host and a TLD.
var sourceURLPattern = regexp.MustCompile(
	`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`,
)

// fieldMessages holds human messages keyed by "<field>.<tag>".
var fieldMessages = map[string]string{
	"companyName.required": "Please add a company name",
	"companyName.min":      "Please add a company name",
	"companyName.max":      "Company name can not be more than 100 characters",
	"unionName.required":   "Please add a union name",
	"unionName.min":        "Please add a union name",
	"unionName.max":        "Union name can not be more than 100 characters",
	"description.required": "Please add a description",
	"description.min":      "Please add a description",
	"description.max":      "Description can not be more than 750 characters",
	"demands.required":     "Please add union demands",
	"demands.min":          "Please add union demands",
	"demands.max":          "Cannot have more than 10 demands",
	"source.sourceurl":     "Please use a valid URL with HTTP or HTTPS",
	"address.required":     "Please add an address",
	"address.min":          "Please add an address",
	"startDate.required":   "Please enter a start date",
	"ongoing.required":     "Please indicate if strike is ongoing",
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("sourceurl", func(fl validator.FieldLevel) bool {
		return IsSourceURL(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register sourceurl validation: %v", err))
	}
}

// IsSourceURL reports whether s is an http(s) URL accepted as a union source.
func IsSourceURL(s string) bool {
	return sourceURLPattern.MatchString(s)
}

// Validate validates s and returns a ValidationFailed AppError listing every
// failing field.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrValidation.Wrap(err)
	}

	messages := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := messageFor(fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		messages = append(messages, msg)
	}

	return errors.ErrValidation.WithMessage("%s", strings.Join(messages, ", "))
}

func messageFor(fe validator.FieldError) string {
	// Field() is the json name; dive errors look like "source[0]".
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if msg, ok := fieldMessages[field+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s can not be more than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
