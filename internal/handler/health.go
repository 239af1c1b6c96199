// File: internal/handler/health.go
package handler

import (
	"net/http"

	"ecocoin/internal/api"
	"ecocoin/internal/cache"
	"ecocoin/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 檢查資料庫連線，有設定 Redis 時一併檢查快取
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Failure     500 {object} api.HealthResponse
// @Router      /healthz [get]
func HealthHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.HealthResponse{Message: "database unhealthy"})
		}
		// 未設定 Redis 時 c 為 nil
		if c != nil {
			if err := c.Ping(reqCtx).Err(); err != nil {
				return ctx.JSON(http.StatusInternalServerError, api.HealthResponse{Message: "cache unhealthy"})
			}
		}
		return ctx.JSON(http.StatusOK, api.HealthResponse{Message: "ok"})
	}
}
