package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAward_缺少密钥应失败(t *testing.T) {
	i := NewIssuer("", time.Hour)
	if i.Enabled() {
		t.Fatalf("期望空密钥时未启用")
	}
	if _, err := i.Award("studio"); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 ErrJWTSecretMissing, got=%v", err)
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	i := NewIssuer("test-secret-123", time.Hour)

	token, err := i.Award("studio-plugin")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	claims, err := i.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims.Plugin != "studio-plugin" || claims.Subject != "studio-plugin" {
		t.Fatalf("期望 plugin==studio-plugin, got=%+v", claims)
	}
}

func TestParse_过期与密钥不符(t *testing.T) {
	i := NewIssuer("secret-a", time.Minute)
	token, err := i.Award("p")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}

	if _, err := NewIssuer("secret-b", time.Minute).ParseToken(token); err == nil {
		t.Fatalf("期望密钥不符时解析失败")
	}

	later := NewIssuer("secret-a", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.ParseToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("期望过期, got=%v", err)
	}
}
