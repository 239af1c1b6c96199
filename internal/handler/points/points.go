// Package points 提供回收機與 kiosk 入帳用的 JSON API
package points

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ecocoin/internal/api"
	"ecocoin/internal/model"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

// Ledger 由 *service.Ledger 實作
type Ledger interface {
	PostPoints(ctx context.Context, userID int, p service.Posting) (int, error)
	PostPointsByPin(ctx context.Context, pin string, p service.Posting) (int, error)
	LookupByPin(ctx context.Context, pin string) (*model.User, error)
}

const (
	msgUserIDRequired = "user_id required"
	msgPinRequired    = "PIN required"
	msgUserNotFound   = "User not found"
	msgInvalidPin     = "Invalid PIN"
	msgInvalidBody    = "invalid request body"
	msgInternal       = "internal error"
)

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, api.ErrorResponse{Success: false, Error: msg})
}

// UpdatePointsHandler 依 user_id 入帳
// @Summary     Update Points
// @Description 寫入一筆回收紀錄並累加餘額，回傳新餘額
// @Tags        points
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdatePointsRequest true "入帳內容"
// @Success     200  {object} api.PointsResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/update-points [post]
func UpdatePointsHandler(l Ledger, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdatePointsRequest
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, msgInvalidBody)
		}
		if err := c.Validate(&req); err != nil {
			return fail(c, http.StatusBadRequest, msgUserIDRequired)
		}

		balance, err := l.PostPoints(c.Request().Context(), req.UserID, service.Posting{
			Material: req.Material,
			Weight:   req.Weight,
			Points:   req.Points,
		})
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, api.PointsResponse{Success: true, NewBalance: balance})
		case errors.Is(err, service.ErrValidation):
			return fail(c, http.StatusBadRequest, msgUserIDRequired)
		case errors.Is(err, service.ErrNotFound):
			return fail(c, http.StatusNotFound, msgUserNotFound)
		default:
			log.ErrorContext(c.Request().Context(), "update points", "user_id", req.UserID, "error", err)
			return fail(c, http.StatusInternalServerError, msgInternal)
		}
	}
}

// GetUserByPinHandler kiosk 以 PIN 查詢使用者
// @Summary     Get User By PIN
// @Tags        points
// @Produce     json
// @Param       pin              query    string true  "6 位數 secret PIN"
// @Param       X-Kiosk-Token    header   string false "有設定 KIOSK_TOKEN 時必填"
// @Success     200 {object} api.PinUserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /api/get_user_by_pin [get]
func GetUserByPinHandler(l Ledger, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		pin := strings.TrimSpace(c.QueryParam("pin"))
		if pin == "" {
			return fail(c, http.StatusBadRequest, msgPinRequired)
		}
		u, err := l.LookupByPin(c.Request().Context(), pin)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, api.PinUserResponse{
				Success: true,
				UserID:  u.ID,
				Name:    u.Name,
				Email:   u.Email,
				Balance: u.Balance,
			})
		case errors.Is(err, service.ErrValidation):
			return fail(c, http.StatusBadRequest, msgPinRequired)
		case errors.Is(err, service.ErrUnknownPin):
			return fail(c, http.StatusNotFound, msgUserNotFound)
		default:
			log.ErrorContext(c.Request().Context(), "lookup pin", "error", err)
			return fail(c, http.StatusInternalServerError, msgInternal)
		}
	}
}

// UpdatePointsByPinHandler kiosk 以 PIN 入帳
// @Summary     Update Points By PIN
// @Tags        points
// @Accept      json
// @Produce     json
// @Param       body          body   api.UpdatePointsByPinRequest true  "入帳內容"
// @Param       X-Kiosk-Token header string                       false "有設定 KIOSK_TOKEN 時必填"
// @Success     200 {object} api.PointsResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/update_points_by_pin [post]
func UpdatePointsByPinHandler(l Ledger, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdatePointsByPinRequest
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, msgInvalidBody)
		}
		req.Pin = strings.TrimSpace(req.Pin)
		if err := c.Validate(&req); err != nil {
			return fail(c, http.StatusBadRequest, msgPinRequired)
		}

		balance, err := l.PostPointsByPin(c.Request().Context(), req.Pin, service.Posting{
			Material: req.Material,
			Weight:   req.Weight,
			Points:   req.Points,
		})
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, api.PointsResponse{Success: true, NewBalance: balance})
		case errors.Is(err, service.ErrValidation):
			return fail(c, http.StatusBadRequest, msgPinRequired)
		case errors.Is(err, service.ErrUnknownPin):
			return fail(c, http.StatusNotFound, msgInvalidPin)
		default:
			log.ErrorContext(c.Request().Context(), "update points by pin", "error", err)
			return fail(c, http.StatusInternalServerError, msgInternal)
		}
	}
}
