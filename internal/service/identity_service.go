package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// IdentityServiceInterface resolves a session token to the identity
// provider's user id.
type IdentityServiceInterface interface {
	Verify(ctx context.Context, token string) (string, error)
}

func NewIdentityService(cfg *config.AuthConfig) (IdentityServiceInterface, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET not set")
		}
		return NewJWTIdentityService(cfg.JWTSecret, cfg.JWTIssuer), nil
	case config.AuthModeRemote:
		if cfg.IdentityBaseURL == "" {
			return nil, fmt.Errorf("IDENTITY_BASE_URL not set")
		}
		return NewRemoteIdentityService(cfg.IdentityBaseURL, cfg.IdentitySecretKey), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.Mode)
	}
}

type SessionClaims struct {
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// JWTIdentityService verifies HS256 session tokens; the subject claim is the
// user id.
type JWTIdentityService struct {
	secret []byte
	issuer string
}

func NewJWTIdentityService(secret, issuer string) *JWTIdentityService {
	return &JWTIdentityService{secret: []byte(secret), issuer: issuer}
}

func (s *JWTIdentityService) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// IssueToken signs a session token for userID. Used by tests and local
// tooling; production tokens come from the identity provider.
func (s *JWTIdentityService) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// RemoteIdentityService asks the identity provider to verify the session
// token. The reply must carry {"status":"active","user_id":"..."}.
type RemoteIdentityService struct {
	client *resty.Client
}

func NewRemoteIdentityService(baseURL, secretKey string) *RemoteIdentityService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if secretKey != "" {
		client.SetAuthToken(secretKey)
	}
	return &RemoteIdentityService{client: client}
}

func (s *RemoteIdentityService) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": token}).
		Post("/v1/sessions/verify")
	if err != nil {
		return "", fmt.Errorf("identity provider unreachable: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 404 {
		return "", ErrInvalidSession
	}
	if resp.IsError() {
		return "", fmt.Errorf("identity provider returned %d", resp.StatusCode())
	}

	body := resp.String()
	if gjson.Get(body, "status").String() != "active" {
		return "", ErrInvalidSession
	}
	userID := gjson.Get(body, "user_id").String()
	if userID == "" {
		return "", ErrInvalidSession
	}
	return userID, nil
}
