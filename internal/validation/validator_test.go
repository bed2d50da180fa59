package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerLike struct {
	Username string `json:"username" label:"Username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" label:"Password" validate:"required,min=6,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	FullName string `json:"full_name" label:"Full name" validate:"required,min=2,max=100"`
}

func validRegister() registerLike {
	return registerLike{
		Username: "sandi_99",
		Password: "secret1",
		Email:    "sandi@example.com",
		FullName: "Sandi",
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestStructValid(t *testing.T) {
	in := validRegister()
	assert.Nil(t, Struct(&in))
}

func TestStructMissingFields(t *testing.T) {
	err := Struct(&registerLike{Username: "sandi"})
	require.NotNil(t, err)

	assert.Equal(t, []string{"password", "email", "full_name"}, err.Missing)
	assert.Equal(t, "Missing required fields: password, email, full_name", err.Error())
	assert.Equal(t, []string{"password", "email", "full_name"}, err.Details()["missing_fields"])
}

func TestStructRuleMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*registerLike)
		want   string
	}{
		{"short username", func(r *registerLike) { r.Username = "ab" }, "Username must be at least 3 characters"},
		{"username charset", func(r *registerLike) { r.Username = "bad-name" }, "Username can only contain letters, numbers, and underscores"},
		{"short password", func(r *registerLike) { r.Password = "123" }, "Password must be at least 6 characters"},
		{"bad email", func(r *registerLike) { r.Email = "nope" }, "Invalid email format"},
		{"short full name", func(r *registerLike) { r.FullName = "A" }, "Full name must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegister()
			tt.mutate(&in)
			err := Struct(&in)
			require.NotNil(t, err)
			assert.Empty(t, err.Missing)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateYear(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateYear("1999", now))
	assert.NoError(t, ValidateYear("1900", now))
	assert.NoError(t, ValidateYear("2031", now))

	err := ValidateYear("99", now)
	require.Error(t, err)
	assert.Equal(t, "Tahun harus terdiri dari 4 digit angka", err.Error())

	err = ValidateYear("20a1", now)
	require.Error(t, err)

	err = ValidateYear("1899", now)
	require.Error(t, err)
	assert.Equal(t, "Tahun harus antara 1900 dan 2031", err.Error())

	assert.Error(t, ValidateYear("2032", now))
}
