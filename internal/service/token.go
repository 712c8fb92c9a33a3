package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 令牌相关错误
var (
	ErrInvalidToken     = errors.New("无效的令牌")
	ErrTokenExpired     = errors.New("令牌已过期")
	ErrInvalidSignature = errors.New("签名验证失败")
	ErrInvalidIssuer    = errors.New("无效的签发者")
)

// TokenTypeAccess 访问令牌类型
const TokenTypeAccess = "access"

// DefaultAccessExpiry 默认访问令牌有效期
const DefaultAccessExpiry = 2 * time.Hour

// TokenClaims JWT 声明
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Type   string `json:"type,omitempty"`
}

// TokenService 令牌服务接口
type TokenService interface {
	// GenerateAccessToken 生成访问令牌
	GenerateAccessToken(ctx context.Context, claims *TokenClaims) (string, error)
	// ValidateToken 验证令牌
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	// AccessExpiry 访问令牌有效期
	AccessExpiry() time.Duration
}

// tokenService 令牌服务实现
type tokenService struct {
	privateKey   *rsa.PrivateKey
	publicKey    *rsa.PublicKey
	keyID        string
	issuer       string
	accessExpiry time.Duration
}

// TokenServiceConfig 令牌服务配置
type TokenServiceConfig struct {
	PrivateKey   *rsa.PrivateKey
	KeyID        string
	Issuer       string
	AccessExpiry time.Duration
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg *TokenServiceConfig) TokenService {
	expiry := cfg.AccessExpiry
	if expiry <= 0 {
		expiry = DefaultAccessExpiry
	}
	return &tokenService{
		privateKey:   cfg.PrivateKey,
		publicKey:    &cfg.PrivateKey.PublicKey,
		keyID:        cfg.KeyID,
		issuer:       cfg.Issuer,
		accessExpiry: expiry,
	}
}

// GenerateAccessToken 生成访问令牌
func (s *tokenService) GenerateAccessToken(ctx context.Context, claims *TokenClaims) (string, error) {
	now := time.Now()
	claims.Type = TokenTypeAccess
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatUint(claims.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.keyID

	return token.SignedString(s.privateKey)
}

// ValidateToken 验证令牌
func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidSignature
		}
		return s.publicKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	// 验证签发者
	if claims.Issuer != s.issuer {
		return nil, ErrInvalidIssuer
	}

	return claims, nil
}

func (s *tokenService) AccessExpiry() time.Duration {
	return s.accessExpiry
}
