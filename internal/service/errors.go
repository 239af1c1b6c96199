package service

import (
	"errors"

	"ecocoin/internal/mail"
	"ecocoin/internal/photo"
	"ecocoin/internal/store"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidOTP         = errors.New("invalid or missing OTP")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownPin         = errors.New("invalid PIN")

	ErrNotFound       = store.ErrNotFound
	ErrDuplicateEmail = store.ErrDuplicateEmail
	ErrDuplicatePin   = store.ErrDuplicatePin

	ErrMailNotConfigured = mail.ErrNotConfigured
	ErrDelivery          = mail.ErrDelivery

	ErrPhotoDecode = photo.ErrDecode
)
