package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
)

// JWTManager is the claims codec: it mints opaque bearer tokens from a
// principal and verifies them back. Verification failures of any kind
// (malformed, mis-signed, expired) come back as errs.TokenInvalid.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

type tokenClaims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	LastName string `json:"last_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(p entity.UserClaims) (string, time.Time, error) {
	return m.generate(p, m.AccessSecret, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(p entity.UserClaims) (string, time.Time, error) {
	return m.generate(p, m.RefreshSecret, m.RefreshTTL)
}

func (m *JWTManager) generate(p entity.UserClaims, secret []byte, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &tokenClaims{
		UserID:   p.ID.String(),
		Email:    p.Email,
		LastName: p.LastName,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// ParseAccessToken verifies a minted access token and returns the
// principal exactly as it was embedded. No directory lookup happens here.
func (m *JWTManager) ParseAccessToken(tokenStr string) (entity.UserClaims, error) {
	return parseToken(tokenStr, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (entity.UserClaims, error) {
	return parseToken(tokenStr, m.RefreshSecret)
}

func parseToken(tokenStr string, secret []byte) (entity.UserClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.TokenInvalid("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return entity.UserClaims{}, errs.TokenInvalid(err.Error())
	}
	if !tkn.Valid {
		return entity.UserClaims{}, errs.TokenInvalid("invalid token")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return entity.UserClaims{}, errs.TokenInvalid("invalid subject id")
	}
	return entity.UserClaims{
		ID:       id,
		Email:    claims.Email,
		LastName: claims.LastName,
		Role:     entity.Role(claims.Role),
	}, nil
}
