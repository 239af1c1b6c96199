// @title        EcoCoin API
// @version      1.0
// @description  EcoCoin 回收點數系統的後端 API 文件
// @host         localhost:5000
// @BasePath     /
// @securityDefinitions.apikey KioskToken
// @in header
// @name X-Kiosk-Token
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecocoin/internal/cache"
	"ecocoin/internal/config"
	"ecocoin/internal/database"
	"ecocoin/internal/logging"
	"ecocoin/internal/mail"
	ecomw "ecocoin/internal/middleware"
	"ecocoin/internal/photo"
	"ecocoin/internal/router"
	"ecocoin/internal/service"
	"ecocoin/internal/view"
	"ecocoin/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "ecocoin/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newPhotoStore   = openPhotoStore
	newRenderer     = view.New
	startServer     = serve
	newWorkerPool   = worker.NewPool
	setupRoutes     = router.Setup
	exitFunc        = os.Exit
)

// shutdownTimeout 收到訊號後等待進行中請求的上限
const shutdownTimeout = 10 * time.Second

// serve 啟動 echo 並在 SIGINT/SIGTERM 時優雅關閉
func serve(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openPhotoStore 依 PHOTO_BACKEND 選擇本機目錄或 S3
func openPhotoStore(ctx context.Context, cfg *config.Config) (photo.Store, error) {
	if cfg.PhotoBackend == config.PhotoBackendS3 {
		return photo.NewS3Store(ctx, photo.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return photo.NewLocalStore(cfg.UploadDir)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := context.Background()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	// 有 Redis 時 OTP 存 Redis，否則存在行程記憶體
	var (
		rdb  cache.Cache
		otps service.OTPStore
	)
	if cfg.RedisAddr != "" {
		rdb, err = newRedisClient(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %v", err)
		}
		defer rdb.Close()
		otps = service.NewRedisOTPStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR 未設定，OTP 改存於記憶體")
		otps = service.NewMemoryOTPStore()
	}

	photos, err := newPhotoStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("照片儲存初始化失敗: %v", err)
	}

	renderer, err := newRenderer()
	if err != nil {
		return fmt.Errorf("載入樣板失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, logger)
	defer wp.Stop()

	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY 未設定，無法寄送 OTP")
	}
	accounts := service.NewAccounts(service.AccountsConfig{
		DB:     db,
		OTPs:   otps,
		Mailer: mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail),
		Photos: photos,
		Jobs:   wp,
		Log:    logger,
		Admin:  service.AdminCredential{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		OTPTTL: cfg.OTPTTL,
	})
	ledger := service.NewLedger(db, logger)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = renderer
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	setupRoutes(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Accounts:   accounts,
		Ledger:     ledger,
		Photos:     photos,
		Sessions:   ecomw.Sessions{Secret: cfg.SessionSecret, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure},
		KioskToken: cfg.KioskToken,
		Log:        logger,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	logger.Info("server starting", "addr", cfg.Addr(), "photo_backend", cfg.PhotoBackend, "admin_enabled", cfg.AdminEnabled())
	return startServer(e, cfg.Addr())
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
