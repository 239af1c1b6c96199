// Package config 從環境變數 (與可選的 .env 檔) 載入服務設定
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	PhotoBackendLocal = "local"
	PhotoBackendS3    = "s3"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// 未設定 REDIS_ADDR 時 OTP 改存於行程記憶體
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionSecret string        `envconfig:"ECO_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	// 部署在 TLS 之後時開啟，cookie 只會經由 https 送出
	CookieSecure bool `envconfig:"COOKIE_SECURE" default:"false"`

	SendGridAPIKey string        `envconfig:"SENDGRID_API_KEY"`
	FromEmail      string        `envconfig:"FROM_EMAIL" default:"project.ecocoin@gmail.com"`
	OTPTTL         time.Duration `envconfig:"OTP_TTL" default:"10m"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	KioskToken string `envconfig:"KIOSK_TOKEN"`

	Port int `envconfig:"PORT" default:"5000"`

	PhotoBackend string `envconfig:"PHOTO_BACKEND" default:"local"`
	UploadDir    string `envconfig:"UPLOAD_DIR" default:"static/uploads"`
	S3Bucket     string `envconfig:"S3_BUCKET"`
	S3Region     string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint   string `envconfig:"S3_ENDPOINT"`
	S3AccessKey  string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey  string `envconfig:"S3_SECRET_KEY"`

	WorkerCount int    `envconfig:"WORKER_COUNT" default:"1"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

var loadDotenv = godotenv.Load

// Load 先讀取 .env (不存在時略過)，再由環境變數填入 Config
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("環境變數設定錯誤: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("環境變數 ECO_SECRET 未設定")
	}
	switch c.PhotoBackend {
	case PhotoBackendLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR 未設定")
		}
	case PhotoBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("PHOTO_BACKEND=s3 時必須設定 S3_BUCKET")
		}
	default:
		return fmt.Errorf("無效的 PHOTO_BACKEND: %q", c.PhotoBackend)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("無效的 WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("無效的 PORT: %d", c.Port)
	}
	return nil
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AdminEnabled 只有同時設定帳號與密碼時才允許管理員登入
func (c *Config) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
