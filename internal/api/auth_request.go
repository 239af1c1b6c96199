package api

// swagger:model api.SendOTPRequest
type SendOTPRequest struct {
	Email string `form:"email" validate:"required" example:"alice@example.com"`
}

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `form:"name" example:"Alice"`
	Email    string `form:"email" example:"alice@example.com"`
	Password string `form:"password" example:"Secret123!"`
	// 前端相機擷取的 base64 data URI
	Photo string `form:"photo" example:"data:image/jpeg;base64,/9j/4AAQ..."`
	OTP   string `form:"otp" example:"123456"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" validate:"required" example:"alice@example.com"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.OTPResponse
type OTPResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"OTP sent to your email"`
}

// swagger:model api.OTPErrorResponse
type OTPErrorResponse struct {
	Error string `json:"error" example:"Email is required"`
}
