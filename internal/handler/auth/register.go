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

// registerForm 重繪註冊頁時保留已輸入的 email
type registerForm struct {
	Email string
}

func RegisterPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "register", nil)
}

// RegisterHandler 驗證 OTP 後建立帳號
// @Summary     註冊
// @Description 驗證 OTP、保存照片並建立帳號，成功後導向登入頁
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       name     formData string true "姓名"
// @Param       email    formData string true "Email"
// @Param       password formData string true "密碼"
// @Param       photo    formData string true "照片 data URI"
// @Param       otp      formData string true "驗證碼"
// @Success     302
// @Failure     400
// @Failure     409
// @Router      /register [post]
func RegisterHandler(acc Accounts, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			middleware.FlashNow(c, "danger", msgFieldsRequired)
			return c.Render(http.StatusBadRequest, "register", registerForm{})
		}
		form := registerForm{Email: req.Email}

		_, err := acc.Register(c.Request().Context(), service.RegisterInput{
			Name:      req.Name,
			Email:     req.Email,
			Password:  req.Password,
			PhotoData: req.Photo,
			OTP:       req.OTP,
		})
		switch {
		case err == nil:
			middleware.SetFlash(c, "success", msgRegistered)
			return c.Redirect(http.StatusFound, "/login")
		case errors.Is(err, service.ErrValidation):
			middleware.FlashNow(c, "danger", msgFieldsRequired)
			return c.Render(http.StatusBadRequest, "register", form)
		case errors.Is(err, service.ErrInvalidOTP):
			middleware.FlashNow(c, "danger", msgInvalidOTP)
			return c.Render(http.StatusBadRequest, "register", form)
		case errors.Is(err, service.ErrPhotoDecode):
			middleware.FlashNow(c, "danger", msgBadPhoto)
			return c.Render(http.StatusBadRequest, "register", form)
		case errors.Is(err, service.ErrDuplicateEmail):
			middleware.FlashNow(c, "warning", msgEmailExists)
			return c.Render(http.StatusConflict, "register", form)
		default:
			log.ErrorContext(c.Request().Context(), "register", "error", err)
			middleware.FlashNow(c, "danger", msgRegisterFailed)
			return c.Render(http.StatusInternalServerError, "register", form)
		}
	}
}
