// Package api provides common API request and response types.
package api

// Account-related request types.
type CreateAccountRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type UpdateAccountRequest struct {
	Username    string  `json:"username"`
	NewUsername string  `json:"newUsername"`
	DisplayName *string `json:"displayName"`
	Role        *string `json:"role"`
	NewPassword string  `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Record-related request types.
type CreateRecordRequest struct {
	Title      string `json:"title"`
	Username   string `json:"username"`
	Secret     string `json:"secret"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
	Favorite   bool   `json:"favorite"`
	CategoryID string `json:"categoryId"`
}

type UpdateRecordRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Username   string `json:"username"`
	Secret     string `json:"secret"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
	Favorite   bool   `json:"favorite"`
	CategoryID string `json:"categoryId"`
}

// Category-related request types.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type UpdateCategoryRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ToggleRequest flips a per-record flag (favorite or visibility) by id.
type ToggleRequest struct {
	ID string `json:"id"`
}

// Common response types.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type RevealResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

type VisibilityResponse struct {
	ID       string `json:"id"`
	Revealed bool   `json:"revealed"`
}

type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
