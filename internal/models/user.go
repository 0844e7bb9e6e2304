package models

import "time"

const (
	RoleUser   = "user"
	RoleTailor = "tailor"
)

type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Email              string    `gorm:"uniqueIndex;not null"`
	FullName           string    `gorm:"not null;default:''"`
	PasswordHash       string    `gorm:"not null"`
	Role               string    `gorm:"not null;default:user"`
	MustChangePassword bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time `gorm:"not null"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleTailor
}
