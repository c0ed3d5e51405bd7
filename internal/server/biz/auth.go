package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/contexts"
	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/pkg/xtime"
)

type AuthConfig struct {
	// SecretKey signs and verifies the HS256 bearer tokens issued for the
	// platform. Identity is established upstream; this service only verifies.
	SecretKey string `conf:"secret_key" json:"secret_key" yaml:"secret_key"`

	// TokenTTL bounds the lifetime of tokens minted by GenerateToken.
	TokenTTL time.Duration `conf:"token_ttl" json:"token_ttl" yaml:"token_ttl"`
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.TokenTTL <= 0 {
		c.TokenTTL = 7 * 24 * time.Hour
	}

	return c
}

func NewAuthService(config AuthConfig) *AuthService {
	return &AuthService{config: config.withDefaults()}
}

type AuthService struct {
	config AuthConfig
}

// GenerateSecretKey generates a random secret key for JWT.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32) // 256 bits

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

// GenerateToken mints an HS256 token carrying the user id.
func (s *AuthService) GenerateToken(ctx context.Context, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     xtime.Now().Add(s.config.TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies a bearer token and returns the user id it carries.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJWT, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidJWT
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", ErrInvalidJWT)
	}

	return userID, nil
}

// ResolveIdentity establishes the caller identity for the request. A bearer
// token wins over an ambient actor id; with neither, the context stays
// anonymous and only public rows remain visible.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != "" {
		userID, err := s.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug(ctx, "rejected bearer token", log.Cause(err))

			return ctx, err
		}

		ctx = contexts.WithActorID(ctx, userID)

		return authz.NewUserContext(ctx, userID), nil
	}

	if actorID, ok := contexts.GetActorID(ctx); ok {
		return authz.NewUserContext(ctx, actorID), nil
	}

	return ctx, nil
}

// CurrentUserID returns the acting user id, or ErrUnauthorized when the
// context is anonymous.
func (s *AuthService) CurrentUserID(ctx context.Context) (string, error) {
	userID, ok := authz.ActingUserID(ctx)
	if !ok {
		return "", fmt.Errorf("anonymous context: %w", ErrUnauthorized)
	}

	return userID, nil
}
