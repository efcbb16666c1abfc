package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

// TokenClaims JWT 令牌声明
type TokenClaims struct {
	UserID uint
	Email  string
	Type   string
	Exp    int64
	Iat    int64
}

// TokenConfig JWT 配置
type TokenConfig struct {
	Secret    []byte
	ExpiresIn time.Duration
}

// JWTService 签发和校验访问令牌
// 登录、刷新令牌流程不在本服务内，这里只负责令牌本身
type JWTService struct {
	config TokenConfig
	now    func() time.Time
}

// NewJWTService 创建新的 JWT 服务
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long, got %d", len(secret))
	}
	if expiresIn <= 0 {
		return nil, errors.New("JWT expiry must be positive")
	}

	return &JWTService{
		config: TokenConfig{Secret: []byte(secret), ExpiresIn: expiresIn},
		now:    time.Now,
	}, nil
}

// GenerateAccessToken 生成访问令牌
func (s *JWTService) GenerateAccessToken(userID uint, email string) (string, time.Time, error) {
	now := s.now()
	expiry := now.Add(s.config.ExpiresIn)

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"type":    tokenTypeAccess,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiry, nil
}

// ParseToken 解析和验证 JWT 令牌
func (s *JWTService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ExtractClaims 解析访问令牌并提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*TokenClaims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != tokenTypeAccess {
		return nil, errors.New("not an access token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, errors.New("user_id in token is not a valid number")
	}

	email, _ := claims["email"].(string)
	expFloat, _ := claims["exp"].(float64)
	iatFloat, _ := claims["iat"].(float64)

	return &TokenClaims{
		UserID: uint(userIDFloat),
		Email:  email,
		Type:   tokenType,
		Exp:    int64(expFloat),
		Iat:    int64(iatFloat),
	}, nil
}
