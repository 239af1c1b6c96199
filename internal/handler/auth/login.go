// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"ecocoin/internal/api"
	"ecocoin/internal/middleware"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

func LoginPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "login", nil)
}

// LoginHandler 使用 Email/Password 登入並寫入 session cookie
// @Summary     登入
// @Description 一般使用者導向 /dashboard，管理員導向 /admin，失敗時回到 /login
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       email    formData string true "Email"
// @Param       password formData string true "密碼"
// @Success     302
// @Router      /login [post]
func LoginHandler(acc Accounts, sessions middleware.Sessions, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return invalidLogin(c)
		}
		if err := c.Validate(&req); err != nil {
			return invalidLogin(c)
		}

		sess, err := acc.Login(c.Request().Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return invalidLogin(c)
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "login", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}

		if err := sessions.Issue(c, *sess); err != nil {
			log.ErrorContext(c.Request().Context(), "issue session", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
		if sess.IsAdmin {
			return c.Redirect(http.StatusFound, "/admin")
		}
		return c.Redirect(http.StatusFound, "/dashboard")
	}
}

func invalidLogin(c echo.Context) error {
	middleware.SetFlash(c, "danger", msgInvalidLogin)
	return c.Redirect(http.StatusFound, "/login")
}

// LogoutHandler 清除 session 後回到首頁
func LogoutHandler(sessions middleware.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessions.Clear(c)
		return c.Redirect(http.StatusFound, "/")
	}
}
