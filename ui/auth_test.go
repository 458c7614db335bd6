package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLoginForm(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     map[string]string
	}{
		{
			name:     "valid",
			email:    "priya@example.com",
			password: "secret123",
			want:     map[string]string{},
		},
		{
			name:     "missing email",
			email:    "   ",
			password: "secret123",
			want:     map[string]string{"email": "Email is required"},
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "secret123",
			want:     map[string]string{"email": "Enter a valid email address"},
		},
		{
			name:     "missing password",
			email:    "priya@example.com",
			password: "",
			want:     map[string]string{"password": "Password is required"},
		},
		{
			name:     "everything missing",
			email:    "",
			password: "",
			want: map[string]string{
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateLoginForm(tc.email, tc.password))
		})
	}
}

func TestValidateRegisterForm(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		want     map[string]string
	}{
		{
			name:     "valid",
			username: "rohan",
			email:    "rohan@example.com",
			password: "secret123",
			confirm:  "secret123",
			want:     map[string]string{},
		},
		{
			name:     "short username",
			username: "ro",
			email:    "rohan@example.com",
			password: "secret123",
			confirm:  "secret123",
			want:     map[string]string{"username": "Username must be at least 3 characters"},
		},
		{
			name:     "whitespace padded username still too short",
			username: "  ro  ",
			email:    "rohan@example.com",
			password: "secret123",
			confirm:  "secret123",
			want:     map[string]string{"username": "Username must be at least 3 characters"},
		},
		{
			name:     "short password",
			username: "rohan",
			email:    "rohan@example.com",
			password: "12345",
			confirm:  "12345",
			want:     map[string]string{"password": "Password must be at least 6 characters"},
		},
		{
			name:     "mismatched confirmation",
			username: "rohan",
			email:    "rohan@example.com",
			password: "secret123",
			confirm:  "secret124",
			want:     map[string]string{"confirm": "Passwords do not match"},
		},
		{
			name:     "bad email",
			username: "rohan",
			email:    "rohan@nodot",
			password: "secret123",
			confirm:  "secret123",
			want:     map[string]string{"email": "Enter a valid email address"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateRegisterForm(tc.username, tc.email, tc.password, tc.confirm))
		})
	}
}

func TestFormatFieldErrors(t *testing.T) {
	errs := map[string]string{
		"password": "Password is required",
		"email":    "Email is required",
	}

	out := formatFieldErrors(errs, loginFields)
	// Known fields render in form order, not map order.
	assert.Equal(t, "[red]email: Email is required[-]\n[red]password: Password is required[-]", out)
}

func TestFormatFieldErrorsUnknownField(t *testing.T) {
	errs := map[string]string{"captcha": "Captcha failed"}

	out := formatFieldErrors(errs, loginFields)
	assert.Equal(t, "[red]captcha: Captcha failed[-]", out)
}
