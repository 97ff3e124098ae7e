package obra

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures for one Input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid obra: " + strings.Join(msgs, "; ")
}

// ValidateInput checks the client-mutable fields. It is shared by the
// create, update, and bulk-upload paths so all three enforce the same rules.
func ValidateInput(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fields []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())

		var message string
		switch {
		case strings.HasPrefix(field, "autores["):
			field = "autores"
			message = "autores must not contain empty entries"
		case fe.Tag() == "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		case fe.Tag() == "min":
			message = fmt.Sprintf("%s must have at least one entry", field)
		default:
			message = fmt.Sprintf("%s is required", field)
		}

		fields = append(fields, FieldError{Field: field, Message: message})
	}

	return &ValidationError{Fields: fields}
}
