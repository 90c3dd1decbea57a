package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WorkspaceClaims 工作区Cookie声明
type WorkspaceClaims struct {
	ClientID   uint   `json:"client_id"`
	ClientSlug string `json:"client_slug"`
	jwt.RegisteredClaims
}

// WorkspaceTokenManager 工作区Cookie签发器
// 仅用于防篡改的工作区切换,不构成认证边界。
type WorkspaceTokenManager struct {
	secretKey  []byte
	expireTime time.Duration
}

// NewWorkspaceTokenManager 创建工作区Cookie签发器
func NewWorkspaceTokenManager(secretKey string, expireTime time.Duration) *WorkspaceTokenManager {
	return &WorkspaceTokenManager{
		secretKey:  []byte(secretKey),
		expireTime: expireTime,
	}
}

// IssueToken 签发工作区Token
func (m *WorkspaceTokenManager) IssueToken(clientID uint, clientSlug string) (string, error) {
	now := time.Now()
	claims := WorkspaceClaims{
		ClientID:   clientID,
		ClientSlug: clientSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expireTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ParseToken 解析并验证工作区Token
func (m *WorkspaceTokenManager) ParseToken(tokenString string) (*WorkspaceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WorkspaceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("无效的签名算法")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*WorkspaceClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的工作区Token")
}
