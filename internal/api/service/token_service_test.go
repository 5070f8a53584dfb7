package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef"

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(secret, time.Hour)

	token, err := svc.Issue("session-1")
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(secret, time.Hour)
	valid, err := svc.Issue("session-1")
	require.NoError(t, err)

	expired := &jwtTokenService{
		secret: []byte(secret),
		ttl:    time.Minute,
		now:    func() time.Time { return time.Now().Add(-time.Hour) },
	}
	old, err := expired.Issue("session-1")
	require.NoError(t, err)

	otherKey, err := NewTokenService("fedcba9876543210", time.Hour).Issue("session-1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "session-1",
		Issuer:  tokenIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "Tampered", token: valid + "x"},
		{name: "Expired", token: old},
		{name: "Wrong key", token: otherKey},
		{name: "Unsigned", token: none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
