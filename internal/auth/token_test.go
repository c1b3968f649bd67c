package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-long-enough-secret-for-tests-0123456789"

func TestIssueVerify(t *testing.T) {
	codec := NewCodec(testSecret, TokenTTL)

	token, err := codec.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, codec.Verify(token))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewCodec(testSecret, TokenTTL).Issue()
	require.NoError(t, err)

	other := NewCodec("a-completely-different-secret-value-xyz", TokenTTL)
	require.False(t, other.Verify(token))
}

func TestVerifyExpired(t *testing.T) {
	codec := NewCodec(testSecret, -time.Second)

	token, err := codec.Issue()
	require.NoError(t, err)
	require.False(t, codec.Verify(token))
}

func TestVerifyEmptySecret(t *testing.T) {
	codec := NewCodec("", TokenTTL)

	token, err := codec.Issue()
	require.NoError(t, err)
	// Even its own output is rejected when no secret is configured.
	require.False(t, codec.Verify(token))
}

func TestVerifyMalformed(t *testing.T) {
	codec := NewCodec(testSecret, TokenTTL)

	good, err := codec.Issue()
	require.NoError(t, err)
	tampered := good + "x"

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered signature", tampered},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, codec.Verify(tt.token))
		})
	}
}
