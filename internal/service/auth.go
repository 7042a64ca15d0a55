package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const tokenTTL = 24 * time.Hour

// Verifier - resolves a bearer token to the user it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (*entity.User, error)
}

type AuthService interface {
	Verifier
	GenerateToken(uid, name string) (string, error)
}

type userClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

// NewAuthService - HS256 tokens signed with secretKey. An empty issuer is neither set nor checked.
func NewAuthService(secretKey, issuer string) AuthService {
	return &authServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}
}

func (that *authServiceImpl) GenerateToken(uid, name string) (string, error) {
	now := that.now()

	claims := userClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    that.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (that *authServiceImpl) Verify(_ context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.ErrUnauthorized
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(that.now),
	}
	if that.issuer != "" {
		options = append(options, jwt.WithIssuer(that.issuer))
	}

	var claims userClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return that.secretKey, nil
	}, options...); err != nil {
		return nil, errors.Join(apperror.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return nil, apperror.ErrUnauthorized
	}

	return &entity.User{
		UID:  claims.Subject,
		Name: entity.DisplayName(claims.Name, claims.Email),
	}, nil
}
