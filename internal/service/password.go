package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 以 bcrypt 雜湊註冊密碼；超過 72 bytes 的密碼視為輸入錯誤
func HashPassword(password string) (string, error) {
	hash, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password is too long", ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("HashPassword: %w", err)
	}
	return string(hash), nil
}

// PasswordMatches 雜湊格式錯誤 (例如舊資料) 也當作不符
func PasswordMatches(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
