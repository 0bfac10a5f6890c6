package dto

// CreateCompanyRequest creates a company; the caller becomes its executive.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// JoinCompanyRequest attaches the caller to a company by join code.
type JoinCompanyRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

// CompanyResponse is the public company representation.
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	JoinCode string `json:"join_code,omitempty"` // only included for executives
}
