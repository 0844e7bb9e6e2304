package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/tailorhub/internal/models"
	"gorm.io/gorm"
)

const (
	DirectoryCategoryAll      = "all"
	DirectoryCategoryNearby   = "nearby"
	DirectoryCategoryTopRated = "top-rated"
)

var ErrTailorNotFound = errors.New("tailor not found")

type TailorListingRepository interface {
	ListWithUsers(ctx context.Context) ([]models.TailorProfile, error)
	FindByUserID(ctx context.Context, userID uint) (models.TailorProfile, error)
}

type DirectoryQuery struct {
	Category string
	Text     string
}

type TailorListing struct {
	UserID        uint     `json:"user_id"`
	Name          string   `json:"name"`
	BusinessName  string   `json:"business_name"`
	Address       string   `json:"address"`
	Specialties   []string `json:"specialties"`
	Services      []string `json:"services"`
	PriceRange    string   `json:"price_range"`
	Availability  string   `json:"availability"`
	Experience    int      `json:"experience"`
	RatingAverage float64  `json:"rating_average"`
	RatingCount   int      `json:"rating_count"`
}

// TailorDetail is a single tailor's page: the listing plus the verification
// fields.
type TailorDetail struct {
	TailorListing
	Certifications []string `json:"certifications"`
	Portfolio      string   `json:"portfolio"`
}

type TailorDirectoryService struct {
	profiles TailorListingRepository
}

func NewTailorDirectoryService(profiles TailorListingRepository) *TailorDirectoryService {
	return &TailorDirectoryService{profiles: profiles}
}

func (service *TailorDirectoryService) Search(ctx context.Context, query DirectoryQuery) ([]TailorListing, error) {
	profiles, err := service.profiles.ListWithUsers(ctx)
	if err != nil {
		return nil, err
	}

	category := NormalizeDirectoryCategory(query.Category)
	text := strings.ToLower(strings.TrimSpace(query.Text))
	listings := make([]TailorListing, 0, len(profiles))
	for _, profile := range profiles {
		if !MatchesDirectoryCategory(profile, category) || !matchesDirectoryText(profile, text) {
			continue
		}
		listings = append(listings, listingFromProfile(profile))
	}
	return listings, nil
}

func (service *TailorDirectoryService) Detail(ctx context.Context, userID uint) (TailorDetail, error) {
	profile, err := service.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TailorDetail{}, ErrTailorNotFound
		}
		return TailorDetail{}, fmt.Errorf("load tailor profile: %w", err)
	}
	return TailorDetail{
		TailorListing:  listingFromProfile(profile),
		Certifications: profile.Certifications,
		Portfolio:      profile.Portfolio,
	}, nil
}

func NormalizeDirectoryCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return DirectoryCategoryAll
	}
	return category
}

// MatchesDirectoryCategory treats any category other than all, nearby and
// top-rated as a case-insensitive specialty substring.
func MatchesDirectoryCategory(profile models.TailorProfile, category string) bool {
	switch category {
	case DirectoryCategoryAll, DirectoryCategoryNearby:
		// Tailors carry no coordinates yet, so nearby lists everyone.
		return true
	case DirectoryCategoryTopRated:
		return profile.RatingAverage >= models.TopRatedThreshold
	}

	for _, specialty := range profile.Specialties {
		if strings.Contains(strings.ToLower(specialty), category) {
			return true
		}
	}
	return false
}

func matchesDirectoryText(profile models.TailorProfile, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(profile.BusinessName), text) ||
		strings.Contains(strings.ToLower(profile.User.FullName), text)
}

func listingFromProfile(profile models.TailorProfile) TailorListing {
	return TailorListing{
		UserID:        profile.UserID,
		Name:          profile.User.FullName,
		BusinessName:  profile.BusinessName,
		Address:       profile.Address,
		Specialties:   profile.Specialties,
		Services:      profile.Services,
		PriceRange:    profile.PriceRange,
		Availability:  profile.Availability,
		Experience:    profile.Experience,
		RatingAverage: profile.RatingAverage,
		RatingCount:   profile.RatingCount,
	}
}
