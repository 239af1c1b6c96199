package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"ecocoin/internal/cache"
	"ecocoin/internal/database"
	"ecocoin/internal/handler"
	"ecocoin/internal/handler/admin"
	"ecocoin/internal/handler/auth"
	"ecocoin/internal/handler/points"
	"ecocoin/internal/handler/users"
	"ecocoin/internal/middleware"
	"ecocoin/internal/photo"
)

// Deps 路由需要的元件
type Deps struct {
	DB       database.DB
	Cache    cache.Cache // 未設定 Redis 時為 nil
	Accounts auth.Accounts
	Ledger   points.Ledger
	Photos   photo.Store
	Sessions middleware.Sessions
	// 空字串表示 PIN API 不檢查裝置 token
	KioskToken string
	Log        *slog.Logger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	db, log := d.DB, d.Log
	if log == nil {
		log = slog.Default()
	}

	// 每個請求都先解析 session，頁面依此顯示登入狀態
	e.Use(d.Sessions.Load)

	// 公開頁面
	e.GET("/", handler.PageHandler("index"))
	e.GET("/credit", handler.PageHandler("credit"))
	e.GET("/support", handler.SupportHandler)
	e.GET("/healthz", handler.HealthHandler(db, d.Cache))
	e.GET("/uploads/:filename", handler.PhotoHandler(d.Photos))

	// 註冊與登入
	e.POST("/send_otp", auth.SendOTPHandler(d.Accounts, log))
	e.GET("/register", auth.RegisterPageHandler)
	e.POST("/register", auth.RegisterHandler(d.Accounts, log))
	e.GET("/login", auth.LoginPageHandler)
	e.POST("/login", auth.LoginHandler(d.Accounts, d.Sessions, log))
	e.GET("/logout", auth.LogoutHandler(d.Sessions))

	// 需登入
	e.GET("/dashboard", users.DashboardHandler(db, log), d.Sessions.RequireUser)
	e.GET("/profile", users.ProfileHandler(db, log), d.Sessions.RequireUser)
	e.GET("/edit_profile", users.EditProfilePageHandler(db, log), d.Sessions.RequireUser)
	e.POST("/edit_profile", users.EditProfileHandler(db, log), d.Sessions.RequireUser)
	e.GET("/leaderboard", users.LeaderboardHandler(db, log), d.Sessions.RequireUser)

	// 管理員
	adm := e.Group("/admin", d.Sessions.RequireAdmin)
	adm.GET("", admin.ListHandler(db, log))
	adm.POST("/delete/:id", admin.DeleteHandler(db, log))
	adm.GET("/edit/:id", admin.EditPageHandler(db, log))
	adm.POST("/edit/:id", admin.EditHandler(db, log))

	// 回收機與 kiosk
	api := e.Group("/api")
	api.POST("/update-points", points.UpdatePointsHandler(d.Ledger, log))
	kiosk := middleware.RequireKioskToken(d.KioskToken)
	api.GET("/get_user_by_pin", points.GetUserByPinHandler(d.Ledger, log), kiosk)
	api.POST("/update_points_by_pin", points.UpdatePointsByPinHandler(d.Ledger, log), kiosk)
}
