package dto

// UserResponse is the sanitized user profile.
type UserResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Role    string           `json:"role"`
	Company *CompanyResponse `json:"company,omitempty"`
}
