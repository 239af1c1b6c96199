package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"ecocoin/internal/api"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	ContextSessionKey = "session"
	SessionCookieName = "eco_session"
	KioskTokenHeader  = "X-Kiosk-Token"
	loginPath         = "/login"
)

// Sessions 以簽章 cookie 保存 session
type Sessions struct {
	Secret string
	TTL    time.Duration
	// 本機開發走 http 時需關閉
	Secure bool
}

func (s Sessions) extract(c echo.Context) (*service.Session, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}
	return service.VerifySessionToken(s.Secret, cookie.Value)
}

// Load 解析 cookie 並放入 context；沒有或無效的 session 不會中斷請求
func (s Sessions) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess, err := s.extract(c); err == nil {
			c.Set(ContextSessionKey, sess)
		}
		return next(c)
	}
}

// RequireUser 需要一般使用者 session，否則導向登入頁
func (s Sessions) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return s.Load(func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil || sess.UserID == 0 {
			return c.Redirect(http.StatusFound, loginPath)
		}
		return next(c)
	})
}

// RequireAdmin 需要管理員 session，否則導向登入頁
func (s Sessions) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return s.Load(func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil || !sess.IsAdmin {
			return c.Redirect(http.StatusFound, loginPath)
		}
		return next(c)
	})
}

// Issue 簽出 session 並寫入 HTTP-only cookie
func (s Sessions) Issue(c echo.Context, sess service.Session) error {
	token, err := service.IssueSessionToken(s.Secret, sess, s.TTL)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.TTL),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear 讓瀏覽器刪除 session cookie
func (s Sessions) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionFrom 取出 Load 放入的 session，沒有時回傳 nil
func SessionFrom(c echo.Context) *service.Session {
	sess, _ := c.Get(ContextSessionKey).(*service.Session)
	return sess
}

// RequireKioskToken token 為空時不做任何檢查
func RequireKioskToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if token == "" {
			return next
		}
		return func(c echo.Context) error {
			got := c.Request().Header.Get(KioskTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid kiosk token"})
			}
			return next(c)
		}
	}
}
