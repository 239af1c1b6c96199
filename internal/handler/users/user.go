package users

import (
	"errors"
	"log/slog"
	"net/http"

	"ecocoin/internal/api"
	"ecocoin/internal/database"
	"ecocoin/internal/middleware"
	"ecocoin/internal/model"
	"ecocoin/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	loadDashboard = service.LoadDashboard
	getUser       = service.GetUser
	editProfile   = service.EditProfile
	leaderboard   = service.Leaderboard
)

// userID 由 RequireUser 保證 session 存在
func userID(c echo.Context) int {
	if sess := middleware.SessionFrom(c); sess != nil {
		return sess.UserID
	}
	return 0
}

// lookupFailed session 指向已刪除的帳號時改走登出
func lookupFailed(c echo.Context, log *slog.Logger, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.Redirect(http.StatusFound, "/logout")
	}
	log.ErrorContext(c.Request().Context(), "load user", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
}

// DashboardHandler 顯示餘額與入帳紀錄
func DashboardHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		dash, err := loadDashboard(c.Request().Context(), db, userID(c))
		if err != nil {
			return lookupFailed(c, log, err)
		}
		return c.Render(http.StatusOK, "dashboard", dash)
	}
}

func ProfileHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := getUser(c.Request().Context(), db, userID(c))
		if err != nil {
			return lookupFailed(c, log, err)
		}
		return c.Render(http.StatusOK, "profile", u)
	}
}

func EditProfilePageHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := getUser(c.Request().Context(), db, userID(c))
		if err != nil {
			return lookupFailed(c, log, err)
		}
		return c.Render(http.StatusOK, "edit_profile", u)
	}
}

// EditProfileHandler 更新個人資料後導向 /profile
func EditProfileHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.EditProfileRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		err := editProfile(c.Request().Context(), db, userID(c), model.Profile{
			Username: req.Username,
			Gender:   req.Gender,
			Address:  req.Address,
			Joined:   req.MemberSince,
		})
		if err != nil {
			return lookupFailed(c, log, err)
		}
		middleware.SetFlash(c, "success", "Profile updated.")
		return c.Redirect(http.StatusFound, "/profile")
	}
}

// LeaderboardHandler 排行榜與材料統計
// @Summary     排行榜
// @Description 依餘額排序的前 50 名、全體材料總計與每位上榜者的材料明細
// @Tags        reports
// @Produce     html
// @Success     200
// @Router      /leaderboard [get]
func LeaderboardHandler(db database.DB, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := leaderboard(c.Request().Context(), db, service.DefaultLeaderboardLimit)
		if err != nil {
			log.ErrorContext(c.Request().Context(), "leaderboard", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load leaderboard")
		}
		return c.Render(http.StatusOK, "leaderboard", view)
	}
}
