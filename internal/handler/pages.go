package handler

import (
	"errors"
	"net/http"

	"ecocoin/internal/photo"

	"github.com/labstack/echo/v4"
)

// SupportFormURL 支援頁導向的外部表單
const SupportFormURL = "https://docs.google.com/forms/d/e/1FAIpQLSc4DSK0gDw2Tg807pK1K0IyWyI6rMXp0JFHJYVVqOXIBRULkw/viewform?usp=sf_link"

// PageHandler 直接渲染不需要資料的頁面
func PageHandler(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, nil)
	}
}

func SupportHandler(c echo.Context) error {
	return c.Redirect(http.StatusFound, SupportFormURL)
}

// PhotoHandler 讀取使用者照片
// @Summary     使用者照片
// @Tags        photos
// @Produce     image/jpeg
// @Param       filename path string true "照片檔名"
// @Success     200
// @Failure     404
// @Router      /uploads/{filename} [get]
func PhotoHandler(store photo.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		rc, contentType, err := store.Open(c.Request().Context(), c.Param("filename"))
		if errors.Is(err, photo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "photo not found")
		}
		if err != nil {
			return err
		}
		defer rc.Close()
		c.Response().Header().Set("Cache-Control", "private, max-age=86400")
		return c.Stream(http.StatusOK, contentType, rc)
	}
}
