package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

var ErrTokenRevoked = errors.New("token has been revoked")

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService 簽發 HS256 token，並在 cache 中記錄已登出的 token 直到其過期
type TokenService struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
}

func NewTokenService(secret string, ttl time.Duration, c cache.Cache) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, cache: c}
}

func (s *TokenService) Issue(userID int) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not set")
	}
	now := timeNow()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify 解析 tokenString，格式錯誤、過期或已撤銷時回傳錯誤
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}

	err = s.cache.Get(ctx, revokedKey(claims.ID)).Err()
	switch {
	case err == nil:
		return nil, ErrTokenRevoked
	case errors.Is(err, redis.Nil):
		return claims, nil
	default:
		return nil, fmt.Errorf("check revocation: %w", err)
	}
}

// Revoke 將 token 列入黑名單直到過期
func (s *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(timeNow())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func revokedKey(jti string) string {
	return cache.Key("revoked", jti)
}
