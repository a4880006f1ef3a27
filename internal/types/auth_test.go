//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: RegisterRequest{Name: "Ada Lovelace", Email: "ada@example.com", Password: "analytical1"},
		},
		{
			name:    "missing name",
			request: RegisterRequest{Email: "ada@example.com", Password: "analytical1"},
			wantErr: true,
		},
		{
			name:    "bad email",
			request: RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "analytical1"},
			wantErr: true,
		},
		{
			name:    "short password",
			request: RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ada@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ada@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "samepassword", NewPassword: "samepassword"}).Validate())
	assert.Error(t, (&UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "short"}).Validate())
}

func TestAuthResponse_JSON(t *testing.T) {
	resp := AuthResponse{
		User:  &User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: "user"},
		Token: "token-value",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"token":"token-value"`)
	assert.Contains(t, string(data), `"email":"ada@example.com"`)
	assert.NotContains(t, string(data), "password")
}
