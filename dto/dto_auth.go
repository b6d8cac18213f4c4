package dto

// RegisterRequest creates an admin or sub-admin account.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest is the credential body for both account kinds.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the signed JWT on successful login.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	UserID  string `json:"userId"`
}

// UpdateSubAdminRequest carries the editable sub-admin profile fields.
type UpdateSubAdminRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// AlertRequest is the create/update body for alerts.
type AlertRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	IsActive *bool  `json:"isActive"`
}

// CategoryRequest is the create/update body for categories.
type CategoryRequest struct {
	Name         string `json:"name"`
	Body         string `json:"body"`
	DisplayOrder *int   `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}
