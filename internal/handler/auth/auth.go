// Package auth 處理 OTP、註冊、登入與登出
package auth

import (
	"context"

	"ecocoin/internal/model"
	"ecocoin/internal/service"
)

// Accounts 由 *service.Accounts 實作
type Accounts interface {
	RequestOTP(ctx context.Context, email string) error
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

const (
	msgEmailRequired  = "Please enter your email first."
	msgOTPSent        = "OTP sent successfully!"
	msgOTPFailed      = "Failed to send OTP"
	msgFieldsRequired = "All fields are required including photo capture."
	msgInvalidOTP     = "Invalid or missing OTP. Please verify your email."
	msgBadPhoto       = "Could not read the captured photo. Please retake it."
	msgEmailExists    = "Email already exists!"
	msgRegisterFailed = "Registration failed. Please try again."
	msgRegistered     = "Registration successful! You can now login."
	msgInvalidLogin   = "Invalid login!"
)
