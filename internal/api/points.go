package api

// swagger:model api.UpdatePointsRequest
type UpdatePointsRequest struct {
	UserID   int     `json:"user_id" validate:"required" example:"1"`
	Material string  `json:"material" example:"plastic"`
	Weight   float64 `json:"weight" example:"2.5"`
	Points   int     `json:"points" example:"10"`
}

// swagger:model api.UpdatePointsByPinRequest
type UpdatePointsByPinRequest struct {
	Pin      string  `json:"pin" validate:"required" example:"424242"`
	Material string  `json:"material" example:"glass"`
	Weight   float64 `json:"weight" example:"1.2"`
	Points   int     `json:"points" example:"5"`
}

// swagger:model api.PointsResponse
type PointsResponse struct {
	Success    bool `json:"success" example:"true"`
	NewBalance int  `json:"new_balance" example:"15"`
}

// swagger:model api.PinUserResponse
type PinUserResponse struct {
	Success bool   `json:"success" example:"true"`
	UserID  int    `json:"user_id" example:"1"`
	Name    string `json:"name" example:"Alice"`
	Email   string `json:"email" example:"alice@example.com"`
	Balance int    `json:"balance" example:"15"`
}

// ErrorResponse points 與 PIN API 的錯誤格式
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"User not found"`
}

// HealthResponse 健康檢查回應
// swagger:model api.HealthResponse
type HealthResponse struct {
	Message string `json:"message" example:"ok"`
}
