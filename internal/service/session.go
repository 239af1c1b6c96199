package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session 一般使用者帶 UserID；管理員只帶 IsAdmin，不對應資料表中的列
type Session struct {
	UserID  int
	IsAdmin bool
}

// SessionClaims 定義 session token 負載內容
type SessionClaims struct {
	UserID  int  `json:"user_id,omitempty"`
	IsAdmin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueSessionToken 以 HS256 簽出 session token
func IssueSessionToken(secret string, s Session, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session secret not set")
	}
	if s.UserID == 0 && !s.IsAdmin {
		return "", errors.New("empty session")
	}

	now := timeNow()
	claims := SessionClaims{
		UserID:  s.UserID,
		IsAdmin: s.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.UserID != 0 {
		claims.Subject = fmt.Sprint(s.UserID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken 驗證簽章與期限並回傳 Session
func VerifySessionToken(secret, tokenString string) (*Session, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret not set")
	}

	token, err := parseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == 0 && !claims.IsAdmin {
		return nil, fmt.Errorf("invalid token")
	}

	return &Session{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
