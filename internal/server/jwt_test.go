package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret-key-0123456789", ExpirationHours: 24, Issuer: "career-prep"})
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := testJWTService()
	userID := uuid.New()

	token, err := s.GenerateToken(userID, "user")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "career-prep", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_Expired(t *testing.T) {
	s := testJWTService()
	s.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := s.GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_Rejections(t *testing.T) {
	s := testJWTService()
	valid, err := s.GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-key-999", ExpirationHours: 1, Issuer: "career-prep"})
	forged, err := other.GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	wrongIssuer := NewJWTService(&config.JWTConfig{Secret: "test-secret-key-0123456789", ExpirationHours: 1, Issuer: "someone-else"})
	foreign, err := wrongIssuer.GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	nilUser, err := s.GenerateToken(uuid.Nil, "user")
	require.NoError(t, err)

	tests := []struct {
		name, token, wantErr string
	}{
		{"empty", "", "empty"},
		{"garbage", "not.a.token", "malformed"},
		{"wrong secret", forged, "signature"},
		{"wrong issuer", foreign, "failed to parse token"},
		{"alg none", none, "signature"},
		{"tampered", valid[:len(valid)-2] + "xx", "signature"},
		{"nil user", nilUser, "not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := s.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	s := testJWTService()
	userID := uuid.New()
	token, err := s.GenerateToken(userID, "user")
	require.NoError(t, err)

	got, err := s.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.GetUserID())

	_, err = s.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
