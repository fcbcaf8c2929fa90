package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIdentityService_Verify(t *testing.T) {
	svc := NewJWTIdentityService("secret", "interview-quiz")
	ctx := context.Background()

	valid, err := svc.IssueToken("user_123", time.Hour)
	require.NoError(t, err)

	expired, err := svc.IssueToken("user_123", -time.Minute)
	require.NoError(t, err)

	otherIssuer, err := NewJWTIdentityService("secret", "someone-else").IssueToken("user_123", time.Hour)
	require.NoError(t, err)

	wrongKey, err := NewJWTIdentityService("other-secret", "interview-quiz").IssueToken("user_123", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user_123",
		Issuer:  "interview-quiz",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"valid", valid, "user_123", false},
		{"empty", "", "", true},
		{"garbage", "not-a-token", "", true},
		{"expired", expired, "", true},
		{"wrong issuer", otherIssuer, "", true},
		{"wrong key", wrongKey, "", true},
		{"missing expiry", noExpiry, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Verify(ctx, tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSession)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteIdentityService_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions/verify", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch body.Token {
		case "good":
			_, _ = w.Write([]byte(`{"id":"sess_1","status":"active","user_id":"user_42"}`))
		case "ended":
			_, _ = w.Write([]byte(`{"id":"sess_2","status":"ended","user_id":"user_42"}`))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	svc := NewRemoteIdentityService(srv.URL+"/", "sk_test")
	ctx := context.Background()

	got, err := svc.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "user_42", got)

	_, err = svc.Verify(ctx, "ended")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Verify(ctx, "unknown")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Verify(ctx, "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSession)
}

func TestNewIdentityService(t *testing.T) {
	_, err := NewIdentityService(&config.AuthConfig{Mode: config.AuthModeJWT})
	assert.Error(t, err)

	svc, err := NewIdentityService(&config.AuthConfig{Mode: config.AuthModeJWT, JWTSecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &JWTIdentityService{}, svc)

	svc, err = NewIdentityService(&config.AuthConfig{Mode: config.AuthModeRemote, IdentityBaseURL: "http://idp"})
	require.NoError(t, err)
	assert.IsType(t, &RemoteIdentityService{}, svc)

	_, err = NewIdentityService(&config.AuthConfig{Mode: "saml"})
	assert.Error(t, err)
}
