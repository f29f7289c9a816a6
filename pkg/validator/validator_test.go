package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	assert.True(t, Password("secret123"))
	assert.False(t, Password("short1"))
	assert.False(t, Password("onlyletters"))
	assert.False(t, Password("12345678"))
	assert.True(t, Password("şifre1234"))
	assert.False(t, Password("şşşşşşş1"), "non-ASCII letters do not count")
	assert.False(t, Password("password١٢٣"), "Arabic-Indic digits do not count")
}

func TestUsername(t *testing.T) {
	assert.True(t, Username("ada_l.ovelace1"))
	assert.False(t, Username("Ada"))
	assert.False(t, Username("ada lovelace"))
	assert.False(t, Username(""))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"password"`
	}

	require.NoError(t, ValidateStruct(form{Name: "Ada", Email: "ada@example.com", Password: "abcd1234"}))

	err := ValidateStruct(form{Email: "nope", Password: "abc"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, FieldError{Field: "Name", Tag: "required"}, verr.Fields[0])
	assert.Equal(t, "email", verr.Fields[1].Tag)
	assert.Equal(t, "password", verr.Fields[2].Tag)
	assert.Contains(t, err.Error(), "validation failed")
}
