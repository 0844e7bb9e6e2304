package registration

import "errors"

var (
	ErrValidation   = errors.New("password mismatch")
	ErrPending      = errors.New("registration request pending")
	ErrFlowClosed   = errors.New("registration flow closed")
	ErrNotFinalStep = errors.New("registration is not on its final step")
	ErrNoSession    = errors.New("account has not been created")

	ErrCollaboratorPanic = errors.New("collaborator panicked")
)

// AccountCreationError wraps a failed Accounts.SignUp call.
type AccountCreationError struct {
	Err error
}

func (err *AccountCreationError) Error() string {
	return "account creation failed: " + err.Err.Error()
}

func (err *AccountCreationError) Unwrap() error {
	return err.Err
}

// ProfileUpdateError wraps a failed Profiles.UpdateProfile call.
type ProfileUpdateError struct {
	Err error
}

func (err *ProfileUpdateError) Error() string {
	return "profile update failed: " + err.Err.Error()
}

func (err *ProfileUpdateError) Unwrap() error {
	return err.Err
}
