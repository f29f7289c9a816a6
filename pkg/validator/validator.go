package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	usernameRe = regexp.MustCompile(`^[a-z0-9_.]+$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("password", validatePassword)
	_ = validate.RegisterValidation("username", validateUsername)
}

// FieldError describes a single failed rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Error carries every failed rule of a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("Field: %s, Tag: %s, Param: %s", f.Field, f.Tag, f.Param))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// Password reports whether p satisfies the password policy: at least 8 characters with at
// least one ASCII letter and one ASCII digit.
func Password(p string) bool {
	if utf8.RuneCountInString(p) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return letter && digit
}

func validatePassword(fl validator.FieldLevel) bool {
	return Password(fl.Field().String())
}

// Username reports whether u only uses lowercase letters, digits, underscores and dots.
func Username(u string) bool {
	return usernameRe.MatchString(u)
}

func validateUsername(fl validator.FieldLevel) bool {
	return Username(fl.Field().String())
}
