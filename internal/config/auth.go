package config

import (
	"os"
	"sync"
)

const (
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

type AuthConfig struct {
	Mode string
	// JWTSecret and JWTIssuer are used in jwt mode.
	JWTSecret string
	JWTIssuer string
	// IdentityBaseURL and IdentitySecretKey are used in remote mode.
	IdentityBaseURL   string
	IdentitySecretKey string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		mode := os.Getenv("AUTH_MODE")
		if mode == "" {
			mode = AuthModeJWT
		}
		authConfig = &AuthConfig{
			Mode:              mode,
			JWTSecret:         os.Getenv("JWT_SECRET"),
			JWTIssuer:         os.Getenv("JWT_ISSUER"),
			IdentityBaseURL:   os.Getenv("IDENTITY_BASE_URL"),
			IdentitySecretKey: os.Getenv("IDENTITY_SECRET_KEY"),
		}
	})
	return authConfig
}
