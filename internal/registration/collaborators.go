package registration

import "context"

const (
	RoleTailor = "tailor"

	// HomeRoute is where a completed registration lands.
	HomeRoute = "/(tabs)"
)

type SignUpRequest struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Session identifies the account created by SignUp. It is owned by the flow
// that created it and passed explicitly to the profile collaborator.
type Session struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type Accounts interface {
	SignUp(ctx context.Context, request SignUpRequest) (Session, error)
}

type Profiles interface {
	UpdateProfile(ctx context.Context, session Session, profile Profile) error
}

// Navigator receives flow exits. Implementations must not call back into the
// stepper: they run while the stepper holds its lock.
type Navigator interface {
	GoBack()
	GoForward(route string, params map[string]string)
}

type noopNavigator struct{}

func (noopNavigator) GoBack() {}

func (noopNavigator) GoForward(string, map[string]string) {}
