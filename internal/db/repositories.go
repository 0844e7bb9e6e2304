package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	TailorProfiles *TailorProfileRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		TailorProfiles: NewTailorProfileRepository(database),
	}
}
