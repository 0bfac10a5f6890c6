package model

// Company maps to companies.
type Company struct {
	CompanyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	JoinCode  string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"join_code"`
	BaseModel
}

// TableName sets the table name.
func (Company) TableName() string { return "companies" }
