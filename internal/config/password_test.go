package config

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPasswordConfig uses the cheapest accepted cost to keep tests fast.
func testPasswordConfig(pepper string) *PasswordConfig {
	return &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: pepper}
}

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  string
	}{
		{"default", "", 12, ""},
		{"minimum", "10", 10, ""},
		{"maximum", "14", 14, ""},
		{"too low", "9", 0, "out of range"},
		{"too high", "15", 0, "out of range"},
		{"not a number", "twelve", 0, "invalid password configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "pepper")
			if tt.cost == "" {
				require.NoError(t, os.Unsetenv("BCRYPT_COST"))
			}

			cfg, err := NewPasswordConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, "pepper", cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := testPasswordConfig("")

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse battery", hash))
	assert.False(t, cfg.VerifyPassword("correct horse battery", "not-a-hash"))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := testPasswordConfig("server-secret")
	plain := testPasswordConfig("")

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))
	assert.False(t, plain.VerifyPassword("password123", hash), "a rotated pepper invalidates old hashes")
	assert.False(t, testPasswordConfig("other-secret").VerifyPassword("password123", hash))
}

func TestPasswordConfig_SaltUniqueness(t *testing.T) {
	cfg := testPasswordConfig("")
	a, err := cfg.HashPassword("same-password")
	require.NoError(t, err)
	b, err := cfg.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, cfg.VerifyPassword("same-password", a))
	assert.True(t, cfg.VerifyPassword("same-password", b))
}

func TestPasswordConfig_Exceeding72Bytes(t *testing.T) {
	_, err := testPasswordConfig("").HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestPasswordConfig_ConcurrentAccess(t *testing.T) {
	cfg := testPasswordConfig("pepper")
	hash, err := cfg.HashPassword("shared-password")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, cfg.VerifyPassword("shared-password", hash))
		}()
	}
	wg.Wait()
}
