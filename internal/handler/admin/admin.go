// Package admin 管理員的使用者清單、編輯與刪除
package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ecocoin/internal/api"
	"ecocoin/internal/database"
	"ecocoin/internal/middleware"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	listUsers  = service.ListUsers
	getUser    = service.GetUser
	editUser   = service.EditUser
	deleteUser = service.DeleteUser
)

const (
	adminPath      = "/admin"
	msgInvalidEdit = "Invalid email or PIN (6 digits)."
)

func paramID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

func ListHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			log.ErrorContext(c.Request().Context(), "list users", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
		}
		return c.Render(http.StatusOK, "admin", users)
	}
}

// DeleteHandler 刪除使用者，入帳紀錄一併刪除
func DeleteHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c)
		if !ok {
			middleware.SetFlash(c, "danger", "User not found.")
			return c.Redirect(http.StatusFound, adminPath)
		}
		err := deleteUser(c.Request().Context(), db, id)
		switch {
		case err == nil:
			log.InfoContext(c.Request().Context(), "user deleted", "user_id", id)
			middleware.SetFlash(c, "success", "User deleted successfully.")
		case errors.Is(err, service.ErrNotFound):
			middleware.SetFlash(c, "danger", "User not found.")
		default:
			log.ErrorContext(c.Request().Context(), "delete user", "user_id", id, "error", err)
			middleware.SetFlash(c, "danger", "Failed to delete user.")
		}
		return c.Redirect(http.StatusFound, adminPath)
	}
}

func EditPageHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c)
		if !ok {
			middleware.SetFlash(c, "danger", "User not found.")
			return c.Redirect(http.StatusFound, adminPath)
		}
		u, err := getUser(c.Request().Context(), db, id)
		if errors.Is(err, service.ErrNotFound) {
			middleware.SetFlash(c, "danger", "User not found.")
			return c.Redirect(http.StatusFound, adminPath)
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "get user", "user_id", id, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
		}
		return c.Render(http.StatusOK, "admin_edit", u)
	}
}

// EditHandler 覆寫使用者欄位；email 重複時回到編輯頁
func EditHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c)
		if !ok {
			middleware.SetFlash(c, "danger", "User not found.")
			return c.Redirect(http.StatusFound, adminPath)
		}
		editPath := adminPath + "/edit/" + strconv.Itoa(id)

		var req api.AdminEditRequest
		if err := c.Bind(&req); err != nil {
			middleware.SetFlash(c, "danger", "Invalid form data.")
			return c.Redirect(http.StatusFound, editPath)
		}
		if err := c.Validate(&req); err != nil {
			middleware.SetFlash(c, "danger", msgInvalidEdit)
			return c.Redirect(http.StatusFound, editPath)
		}

		err := editUser(c.Request().Context(), db, id, service.AdminEdit{
			Name:      req.Name,
			Email:     req.Email,
			Balance:   req.Balance,
			Username:  req.Username,
			Gender:    req.Gender,
			Address:   req.Address,
			Joined:    req.Joined,
			SecretPin: req.SecretPin,
		})
		switch {
		case err == nil:
			log.InfoContext(c.Request().Context(), "user updated", "user_id", id)
			middleware.SetFlash(c, "success", "User updated successfully.")
			return c.Redirect(http.StatusFound, adminPath)
		case errors.Is(err, service.ErrDuplicateEmail):
			middleware.SetFlash(c, "danger", "Email already exists.")
			return c.Redirect(http.StatusFound, editPath)
		case errors.Is(err, service.ErrDuplicatePin):
			middleware.SetFlash(c, "danger", "PIN already in use.")
			return c.Redirect(http.StatusFound, editPath)
		case errors.Is(err, service.ErrValidation):
			middleware.SetFlash(c, "danger", "Name and email are required.")
			return c.Redirect(http.StatusFound, editPath)
		case errors.Is(err, service.ErrNotFound):
			middleware.SetFlash(c, "danger", "User not found.")
			return c.Redirect(http.StatusFound, adminPath)
		default:
			log.ErrorContext(c.Request().Context(), "edit user", "user_id", id, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update user")
		}
	}
}
