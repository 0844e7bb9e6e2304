// Package registration implements the tailor registration wizard: a linear
// sequence of steps that creates the account on the first step and submits
// the tailor profile on the last one.
package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultCallTimeout bounds a collaborator call when Options.CallTimeout is unset.
const DefaultCallTimeout = 10 * time.Second

// Phase is the lifecycle state of a flow.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhasePending  Phase = "pending"
	PhaseTerminal Phase = "terminal"
	PhaseExited   Phase = "exited"
)

// Options supplies the collaborators of a Stepper. Navigator, CallTimeout and
// Role fall back to a no-op navigator, DefaultCallTimeout and RoleTailor.
type Options struct {
	Accounts    Accounts
	Profiles    Profiles
	Navigator   Navigator
	CallTimeout time.Duration
	Role        string
}

// Stepper holds one registration flow. It is safe for concurrent use; while a
// collaborator call is outstanding Advance and Retreat fail with ErrPending.
type Stepper struct {
	mu sync.Mutex

	catalog     Catalog
	accounts    Accounts
	profiles    Profiles
	navigator   Navigator
	callTimeout time.Duration
	role        string

	index      int
	form       FormState
	phase      Phase
	session    *Session
	profile    *Profile
	lastErr    error
	cancelCall context.CancelFunc
}

// NewStepper starts a flow on the first step with form pre-seeded from seed
// (the carry-in email and full name).
func NewStepper(catalog Catalog, seed map[string]string, options Options) (*Stepper, error) {
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if options.Accounts == nil || options.Profiles == nil {
		return nil, errors.New("registration collaborators are required")
	}

	navigator := options.Navigator
	if navigator == nil {
		navigator = noopNavigator{}
	}
	timeout := options.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	role := options.Role
	if role == "" {
		role = RoleTailor
	}

	return &Stepper{
		catalog:     catalog,
		accounts:    options.Accounts,
		profiles:    options.Profiles,
		navigator:   navigator,
		callTimeout: timeout,
		role:        role,
		form:        FormState(seed).clone(),
		phase:       PhaseActive,
	}, nil
}

func (stepper *Stepper) SetField(name string, value string) {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if stepper.closedLocked() {
		return
	}
	stepper.form[name] = value
}

func (stepper *Stepper) Value(name string) (string, bool) {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	value, ok := stepper.form[name]
	return value, ok
}

func (stepper *Stepper) Index() int {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()
	return stepper.index
}

func (stepper *Stepper) StepCount() int {
	return stepper.catalog.Len()
}

// Progress is (index+1)/stepCount.
func (stepper *Stepper) Progress() float64 {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()
	return stepper.progressLocked()
}

func (stepper *Stepper) Phase() Phase {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()
	return stepper.phase
}

func (stepper *Stepper) Pending() bool {
	return stepper.Phase() == PhasePending
}

func (stepper *Stepper) Session() (Session, bool) {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if stepper.session == nil {
		return Session{}, false
	}
	return *stepper.session, true
}

// Profile returns the submitted profile once the flow is terminal.
func (stepper *Stepper) Profile() (Profile, bool) {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if stepper.profile == nil {
		return Profile{}, false
	}
	return *stepper.profile, true
}

// Advance moves to the next step. The first step requires matching passwords
// and creates the account; the last step finalizes the flow instead.
func (stepper *Stepper) Advance(ctx context.Context) error {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if err := stepper.ensureIdleLocked(); err != nil {
		return err
	}

	if stepper.index == 0 {
		if err := stepper.createAccountLocked(ctx); err != nil {
			return stepper.surfaceLocked(err)
		}
	}

	if stepper.index < stepper.lastIndex() {
		stepper.index++
		stepper.lastErr = nil
		return nil
	}

	return stepper.surfaceLocked(stepper.finalizeLocked(ctx))
}

// Finalize submits the profile. It is only valid on the last step.
func (stepper *Stepper) Finalize(ctx context.Context) error {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if err := stepper.ensureIdleLocked(); err != nil {
		return err
	}
	if stepper.index != stepper.lastIndex() {
		return ErrNotFinalStep
	}
	return stepper.surfaceLocked(stepper.finalizeLocked(ctx))
}

// Retreat goes back one step. On the first step it asks the navigator to exit
// the flow and leaves the stepper untouched.
func (stepper *Stepper) Retreat() error {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if err := stepper.ensureIdleLocked(); err != nil {
		return err
	}

	stepper.lastErr = nil
	if stepper.index > 0 {
		stepper.index--
		return nil
	}
	stepper.navigator.GoBack()
	return nil
}

// Abandon closes the flow, cancelling any outstanding collaborator call and
// discarding collected input.
func (stepper *Stepper) Abandon() {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	if stepper.closedLocked() {
		return
	}
	if stepper.cancelCall != nil {
		stepper.cancelCall()
	}
	stepper.phase = PhaseExited
	stepper.form = FormState{}
}

func (stepper *Stepper) createAccountLocked(ctx context.Context) error {
	password := stepper.form[FieldPassword]
	if password != stepper.form[FieldConfirmPassword] {
		return ErrValidation
	}
	if stepper.session != nil {
		return nil
	}

	request := SignUpRequest{
		Email:    stepper.form[FieldEmail],
		Password: password,
		FullName: stepper.form[FieldFullName],
		Role:     stepper.role,
	}

	var session Session
	err := stepper.callLocked(ctx, func(callCtx context.Context) error {
		var signUpErr error
		session, signUpErr = stepper.accounts.SignUp(callCtx, request)
		return signUpErr
	})
	if stepper.phase == PhaseExited {
		return ErrFlowClosed
	}
	if err != nil {
		return &AccountCreationError{Err: err}
	}

	stepper.session = &session
	return nil
}

func (stepper *Stepper) finalizeLocked(ctx context.Context) error {
	if stepper.session == nil {
		return &ProfileUpdateError{Err: ErrNoSession}
	}

	session := *stepper.session
	profile := BuildProfile(stepper.form)
	err := stepper.callLocked(ctx, func(callCtx context.Context) error {
		return stepper.profiles.UpdateProfile(callCtx, session, profile)
	})
	if stepper.phase == PhaseExited {
		return ErrFlowClosed
	}
	if err != nil {
		return &ProfileUpdateError{Err: err}
	}

	stepper.profile = &profile
	stepper.phase = PhaseTerminal
	stepper.form = FormState{}
	stepper.lastErr = nil
	stepper.navigator.GoForward(HomeRoute, nil)
	return nil
}

// callLocked runs fn under the call timeout with the lock released, so
// Abandon can cancel it. The lock is held again when callLocked returns, also
// when fn panics; the panic is returned as an error.
func (stepper *Stepper) callLocked(ctx context.Context, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, stepper.callTimeout)
	stepper.phase = PhasePending
	stepper.cancelCall = cancel

	err := func() (err error) {
		stepper.mu.Unlock()
		defer stepper.mu.Lock()
		defer cancel()
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%w: %v", ErrCollaboratorPanic, recovered)
			}
		}()
		return fn(callCtx)
	}()

	stepper.cancelCall = nil
	if stepper.phase == PhasePending {
		stepper.phase = PhaseActive
	}
	return err
}

func (stepper *Stepper) ensureIdleLocked() error {
	switch stepper.phase {
	case PhasePending:
		return ErrPending
	case PhaseTerminal, PhaseExited:
		return ErrFlowClosed
	default:
		return nil
	}
}

func (stepper *Stepper) surfaceLocked(err error) error {
	if err != nil && !errors.Is(err, ErrFlowClosed) {
		stepper.lastErr = err
	}
	return err
}

func (stepper *Stepper) closedLocked() bool {
	return stepper.phase == PhaseTerminal || stepper.phase == PhaseExited
}

func (stepper *Stepper) lastIndex() int {
	return stepper.catalog.Len() - 1
}

func (stepper *Stepper) progressLocked() float64 {
	return float64(stepper.index+1) / float64(stepper.catalog.Len())
}
