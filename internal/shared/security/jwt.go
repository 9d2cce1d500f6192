package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrJWTSecretMissing = errors.New("jwt secret is not set")

// Claims 标识一个编辑器插件会话。
type Claims struct {
	Plugin string `json:"plugin"`
	jwt.RegisteredClaims
}

// Issuer 用同一个 HS256 密钥签发和校验会话令牌。
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Enabled 为 false 时调用方应跳过鉴权。
func (i *Issuer) Enabled() bool {
	return i != nil && len(i.secret) > 0
}

// Award 生成 Token。
func (i *Issuer) Award(plugin string) (string, error) {
	if !i.Enabled() {
		return "", ErrJWTSecretMissing
	}

	now := i.now()
	claims := &Claims{
		Plugin: plugin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   plugin,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseToken 解析并验证 Token。
func (i *Issuer) ParseToken(tokenStr string) (*Claims, error) {
	if !i.Enabled() {
		return nil, ErrJWTSecretMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if token == nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
