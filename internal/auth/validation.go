package auth

import (
	"errors"

	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/i18n"
	"driving-quiz-service/pkg/validator"
)

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []validator.FieldError
}

func (e *ValidationError) Error() string {
	return (&validator.Error{Fields: e.Fields}).Error()
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidCredentials }

// Messages renders one translated message per failed field, keyed by field name.
// Only the first failed rule of a field is reported.
func (e *ValidationError) Messages(tr i18n.Translator) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; ok {
			continue
		}
		label := tr.T("field." + f.Field)
		switch f.Tag {
		case "required":
			out[f.Field] = tr.Tf("validation.required", label)
		case "email", "password", "username", "eqfield":
			out[f.Field] = tr.T("validation." + f.Tag)
		case "min":
			out[f.Field] = tr.Tf("validation.min", label)
		default:
			out[f.Field] = tr.Tf("validation.invalid", label)
		}
	}
	return out
}

func validateForm(form any) error {
	err := validator.ValidateStruct(form)
	if err == nil {
		return nil
	}
	var verr *validator.Error
	if errors.As(err, &verr) {
		return &ValidationError{Fields: verr.Fields}
	}
	return err
}
