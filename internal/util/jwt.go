package util

import (
	"time"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/errors"

	"github.com/dgrijalva/jwt-go"
)

// GenerateToken 为指定用户生成会话令牌
func GenerateToken(uid string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"exp": time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 校验会话令牌并返回其中的用户ID。
// 过期与缺失分别映射到 ErrTokenExpired / ErrMissingToken。
func ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New(errors.ErrMissingToken, "missing session token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", errors.Wrap(errors.ErrTokenExpired, "session token expired", err)
		}
		return "", errors.Wrap(errors.ErrMissingToken, "invalid session token", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		uid, ok := claims["uid"].(string)
		if !ok || uid == "" {
			return "", errors.New(errors.ErrMissingToken, "token has no uid claim")
		}
		return uid, nil
	}

	return "", errors.New(errors.ErrMissingToken, "invalid session token")
}
