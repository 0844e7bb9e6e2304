package models

import "time"

// TopRatedThreshold is the minimum average rating listed under "top-rated".
const TopRatedThreshold = 4.5

type TailorProfile struct {
	ID             uint     `gorm:"primaryKey"`
	UserID         uint     `gorm:"not null;uniqueIndex"`
	BusinessName   string   `gorm:"not null;default:''"`
	Address        string   `gorm:"not null;default:''"`
	Specialties    []string `gorm:"serializer:json"`
	Services       []string `gorm:"serializer:json"`
	PriceRange     string   `gorm:"not null;default:''"`
	Availability   string   `gorm:"not null;default:''"`
	Experience     int      `gorm:"not null;default:0"`
	Certifications []string `gorm:"serializer:json"`
	Portfolio      string   `gorm:"not null;default:''"`
	RatingAverage  float64  `gorm:"not null;default:0"`
	RatingCount    int      `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User `gorm:"foreignKey:UserID"`
}
