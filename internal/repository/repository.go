package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User         UserRepository
	Company      CompanyRepository
	WorkArea     WorkAreaRepository
	Shift        ShiftRepository
	Notification NotificationRepository
}

// NewRepository builds the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Company:      NewCompanyRepo(db),
		WorkArea:     NewWorkAreaRepo(db),
		Shift:        NewShiftRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
