package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ecocoin/internal/database"
	"ecocoin/internal/mail"
	"ecocoin/internal/model"
	"ecocoin/internal/photo"
	"ecocoin/internal/store"
	"ecocoin/internal/worker"

	"github.com/jackc/pgx/v5"
)

// 以下變數供測試覆寫
var (
	createUser     = store.CreateUser
	setSecretPin   = store.SetSecretPin
	getUserByEmail = store.GetUserByEmail
	generateCode   = GenerateCode
	newPhotoName   = photo.NewFilename
	decodePhoto    = photo.Decode
)

// pinAttempts 產生 secret PIN 遇到碰撞時的重試次數
const pinAttempts = 5

// AdminCredential 由設定檔提供的管理員帳密，任一欄為空即停用管理員登入
type AdminCredential struct {
	Email    string
	Password string
}

func (a AdminCredential) matches(email, password string) bool {
	if a.Email == "" || a.Password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(NormalizeEmail(a.Email)), []byte(email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1
	return emailOK && passOK
}

type Accounts struct {
	db     database.DB
	otps   OTPStore
	mailer mail.Mailer
	photos photo.Store
	jobs   worker.Pool
	log    *slog.Logger
	admin  AdminCredential
	otpTTL time.Duration
}

type AccountsConfig struct {
	DB     database.DB
	OTPs   OTPStore
	Mailer mail.Mailer
	Photos photo.Store
	Jobs   worker.Pool
	Log    *slog.Logger
	Admin  AdminCredential
	OTPTTL time.Duration
}

func NewAccounts(c AccountsConfig) *Accounts {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	return &Accounts{
		db:     c.DB,
		otps:   c.OTPs,
		mailer: c.Mailer,
		photos: c.Photos,
		jobs:   c.Jobs,
		log:    c.Log,
		admin:  c.Admin,
		otpTTL: c.OTPTTL,
	}
}

// RequestOTP 產生新驗證碼 (覆寫舊碼) 並寄到 email
func (a *Accounts) RequestOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := a.otps.Put(ctx, email, code, a.otpTTL); err != nil {
		return err
	}

	plain, html := mail.OTPBody(code, int(a.otpTTL/time.Minute))
	if err := a.mailer.Send(ctx, email, mail.OTPSubject, plain, html); err != nil {
		a.log.ErrorContext(ctx, "otp dispatch failed", "email", email, "error", err)
		return fmt.Errorf("RequestOTP: %w", err)
	}
	a.log.InfoContext(ctx, "otp sent", "email", email)
	return nil
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	PhotoData string
	OTP       string
}

// Register 驗證 OTP 後建立帳號、保存照片並指派 secret PIN
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.PhotoData == "" {
		return nil, fmt.Errorf("%w: all fields are required including photo capture", ErrValidation)
	}

	expected, err := a.otps.Get(ctx, in.Email)
	if err != nil && !errors.Is(err, ErrOTPNotFound) {
		return nil, err
	}
	if err != nil || subtle.ConstantTimeCompare([]byte(expected), []byte(in.OTP)) != 1 {
		return nil, ErrInvalidOTP
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	data, contentType, err := decodePhoto(in.PhotoData)
	if err != nil {
		return nil, err
	}
	filename := newPhotoName(contentType)
	if err := a.photos.Save(ctx, filename, data, contentType); err != nil {
		return nil, fmt.Errorf("Register: save photo: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Photo:        filename,
	}
	err = pgx.BeginFunc(ctx, a.db, func(tx pgx.Tx) error {
		if _, err := createUser(ctx, tx, user); err != nil {
			return err
		}
		pin, err := assignSecretPin(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		user.SecretPin = pin
		return nil
	})
	if err != nil {
		if delErr := a.photos.Delete(ctx, filename); delErr != nil {
			a.log.WarnContext(ctx, "orphan photo cleanup failed", "photo", filename, "error", delErr)
		}
		return nil, err
	}

	if err := a.otps.Delete(ctx, in.Email); err != nil {
		a.log.WarnContext(ctx, "otp delete failed", "email", in.Email, "error", err)
	}
	a.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	a.sendWelcome(user.Email, user.Name, user.SecretPin)
	return user, nil
}

// assignSecretPin 在 savepoint 內寫入 PIN，碰撞時回滾 savepoint 再試
func assignSecretPin(ctx context.Context, tx pgx.Tx, userID int) (string, error) {
	for i := 0; i < pinAttempts; i++ {
		pin, err := generateCode()
		if err != nil {
			return "", err
		}
		err = pgx.BeginFunc(ctx, tx, func(sp pgx.Tx) error {
			return setSecretPin(ctx, sp, userID, pin)
		})
		if errors.Is(err, ErrDuplicatePin) {
			continue
		}
		if err != nil {
			return "", err
		}
		return pin, nil
	}
	return "", fmt.Errorf("assignSecretPin: %w after %d attempts", ErrDuplicatePin, pinAttempts)
}

func (a *Accounts) sendWelcome(to, name, pin string) {
	if a.jobs == nil {
		return
	}
	a.jobs.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		plain, html := mail.WelcomeBody(name, pin)
		if err := a.mailer.Send(ctx, to, mail.WelcomeSubject, plain, html); err != nil {
			a.log.WarnContext(ctx, "welcome mail failed", "email", to, "error", err)
		}
	})
}

// Login 先查使用者，失敗時再比對設定中的管理員帳密
func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	password = strings.TrimSpace(password)

	user, err := getUserByEmail(ctx, a.db, email)
	switch {
	case err == nil:
		if PasswordMatches(user.PasswordHash, password) {
			return &Session{UserID: user.ID}, nil
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if a.admin.matches(email, password) {
		a.log.InfoContext(ctx, "admin login")
		return &Session{IsAdmin: true}, nil
	}
	return nil, ErrInvalidCredentials
}
