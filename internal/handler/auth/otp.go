package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"ecocoin/internal/api"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

// SendOTPHandler 寄送註冊用的驗證碼
// @Summary     寄送 OTP
// @Description 產生六位數驗證碼並寄到指定 email，重複請求會覆寫前一組
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email formData string true "使用者 Email"
// @Success     200   {object} api.OTPResponse
// @Failure     400   {object} api.OTPErrorResponse
// @Failure     500   {object} api.OTPErrorResponse
// @Router      /send_otp [post]
func SendOTPHandler(acc Accounts, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SendOTPRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.OTPErrorResponse{Error: msgEmailRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.OTPErrorResponse{Error: msgEmailRequired})
		}

		err := acc.RequestOTP(c.Request().Context(), req.Email)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, api.OTPResponse{Success: true, Message: msgOTPSent})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, api.OTPErrorResponse{Error: msgEmailRequired})
		default:
			log.ErrorContext(c.Request().Context(), "send otp", "error", err)
			return c.JSON(http.StatusInternalServerError, api.OTPErrorResponse{Error: msgOTPFailed})
		}
	}
}
