package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/tailorhub/internal/models"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists         = errors.New("email already exists")
	ErrRoleInvalid         = errors.New("invalid role")
	ErrProfileOwnerInvalid = errors.New("profile owner is not a tailor")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error
}

type TailorProfileRepository interface {
	Upsert(ctx context.Context, profile *models.TailorProfile) error
	FindByUserID(ctx context.Context, userID uint) (models.TailorProfile, error)
}

// AuthService creates accounts and stores tailor profiles. It is the
// registration flow's account and profile collaborator.
type AuthService struct {
	users    AuthUserRepository
	profiles TailorProfileRepository
	hashCost int
	now      func() time.Time
}

var (
	_ registration.Accounts = (*AuthService)(nil)
	_ registration.Profiles = (*AuthService)(nil)
)

func NewAuthService(users AuthUserRepository, profiles TailorProfileRepository) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

func (service *AuthService) SignUp(ctx context.Context, request registration.SignUpRequest) (registration.Session, error) {
	email := NormalizeAuthEmail(request.Email)
	if email == "" {
		return registration.Session{}, ErrAuthCredentialsInvalid
	}
	fullName, err := NormalizeFullName(request.FullName)
	if err != nil {
		return registration.Session{}, err
	}
	role := strings.TrimSpace(request.Role)
	if !models.IsValidRole(role) {
		return registration.Session{}, ErrRoleInvalid
	}
	if err := ValidatePasswordStrength(request.Password); err != nil {
		return registration.Session{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, email)
	if err != nil {
		return registration.Session{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return registration.Session{}, ErrEmailExists
	}

	if err := ctx.Err(); err != nil {
		return registration.Session{}, err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(request.Password), service.hashCost)
	if err != nil {
		return registration.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(passwordHash),
		Role:         role,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		// A concurrent signup may claim the email after the existence check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return registration.Session{}, ErrEmailExists
		}
		return registration.Session{}, fmt.Errorf("create user: %w", err)
	}

	return SessionForUser(user), nil
}

func (service *AuthService) SignIn(ctx context.Context, emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

// UpdateProfile stores the submitted tailor profile for the session's account.
func (service *AuthService) UpdateProfile(ctx context.Context, session registration.Session, profile registration.Profile) error {
	owner, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileOwnerInvalid
		}
		return fmt.Errorf("load profile owner: %w", err)
	}
	if owner.Role != models.RoleTailor {
		return ErrProfileOwnerInvalid
	}

	record := models.TailorProfile{
		UserID:         owner.ID,
		BusinessName:   strings.TrimSpace(profile.BusinessName),
		Address:        strings.TrimSpace(profile.Address),
		Specialties:    profile.Specialties,
		Services:       profile.Services,
		PriceRange:     strings.TrimSpace(profile.PriceRange),
		Availability:   strings.TrimSpace(profile.Availability),
		Experience:     profile.Experience,
		Certifications: profile.Certifications,
		Portfolio:      strings.TrimSpace(profile.Portfolio),
	}
	if err := service.profiles.Upsert(ctx, &record); err != nil {
		return fmt.Errorf("save tailor profile: %w", err)
	}
	return nil
}

// TailorProfile returns the stored profile of userID, if any.
func (service *AuthService) TailorProfile(ctx context.Context, userID uint) (models.TailorProfile, bool, error) {
	profile, err := service.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TailorProfile{}, false, nil
	}
	if err != nil {
		return models.TailorProfile{}, false, err
	}
	return profile, true, nil
}

func SessionForUser(user models.User) registration.Session {
	return registration.Session{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}
