package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:    "ada@example.com",
		Password: "passw0rd",
		Name:     "Ada Lovelace",
	}
	assert.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		modify func(r SignupRequest) SignupRequest
	}{
		{
			name: "missing email",
			modify: func(r SignupRequest) SignupRequest {
				r.Email = ""
				return r
			},
		},
		{
			name: "malformed email",
			modify: func(r SignupRequest) SignupRequest {
				r.Email = "not-an-email"
				return r
			},
		},
		{
			name: "missing name",
			modify: func(r SignupRequest) SignupRequest {
				r.Name = ""
				return r
			},
		},
		{
			name: "password too short",
			modify: func(r SignupRequest) SignupRequest {
				r.Password = "pass1"
				return r
			},
		},
		{
			name: "password without a digit",
			modify: func(r SignupRequest) SignupRequest {
				r.Password = "password"
				return r
			},
		},
		{
			name: "password without a letter",
			modify: func(r SignupRequest) SignupRequest {
				r.Password = "12345678"
				return r
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.modify(valid)
			assert.Error(t, req.Validate())
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Email: "ada@example.com", Password: "passw0rd"}
	assert.NoError(t, valid.Validate())

	missingEmail := LoginRequest{Password: "passw0rd"}
	assert.Error(t, missingEmail.Validate())

	missingPassword := LoginRequest{Email: "ada@example.com"}
	assert.Error(t, missingPassword.Validate())
}
