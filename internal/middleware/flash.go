package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	flashCookieName = "eco_flash"
	flashNowKey     = "flash_now"
)

// Flash 跨一次導向顯示的提示訊息
type Flash struct {
	Kind    string
	Message string
}

// SetFlash 寫入下一個頁面要顯示的訊息，kind 例如 success、danger、warning
func SetFlash(c echo.Context, kind, message string) {
	raw := kind + "|" + message
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(raw)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FlashNow 只在本次回應顯示的訊息，例如表單驗證失敗後直接重繪頁面
func FlashNow(c echo.Context, kind, message string) {
	c.Set(flashNowKey, &Flash{Kind: kind, Message: message})
}

// PopFlash 讀出並清除訊息；FlashNow 優先，沒有訊息時回傳 nil
func PopFlash(c echo.Context) *Flash {
	if f, ok := c.Get(flashNowKey).(*Flash); ok {
		return f
	}
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookieName, Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}
