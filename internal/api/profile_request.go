// File: internal/api/profile_request.go
package api

// swagger:model api.EditProfileRequest
type EditProfileRequest struct {
	Username    string `form:"username" example:"alice"`
	Gender      string `form:"gender" example:"female"`
	Address     string `form:"address" example:"Taipei"`
	MemberSince string `form:"member_since" example:"2024-01"`
}

// swagger:model api.AdminEditRequest
type AdminEditRequest struct {
	Name      string `form:"name" validate:"required" example:"Alice"`
	Email     string `form:"email" validate:"required,email" example:"alice@example.com"`
	Balance   int    `form:"balance" example:"15"`
	Username  string `form:"username" example:"alice"`
	Gender    string `form:"gender" example:"female"`
	Address   string `form:"address" example:"Taipei"`
	Joined    string `form:"joined" example:"2024-01"`
	SecretPin string `form:"secret_pin" validate:"omitempty,len=6,numeric" example:"424242"`
}
