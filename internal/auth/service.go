package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/ryanfelix147-netizen/GT/internal/shared"
)

// Gate implements the cosmetic login gate. It performs no identity
// verification; see Credentials.
type Gate struct {
	validate *validator.Validate
}

// NewGate constructs a Gate.
func NewGate() *Gate {
	return &Gate{validate: validator.New()}
}

// StateOf maps the session flag to a gate State.
func StateOf(sess SessionState) State {
	if sess != nil && sess.Authenticated() {
		return Authenticated
	}
	return Unauthenticated
}

// Login moves the session to Authenticated when both fields are non-empty.
// On ErrEmptyFields the session is left untouched.
func (g *Gate) Login(sess SessionState, creds Credentials) error {
	if err := g.validate.Struct(creds); err != nil {
		return shared.ErrEmptyFields
	}
	sess.SetAuthenticated(true)
	return nil
}

// Logout returns the session to Unauthenticated unconditionally.
func (g *Gate) Logout(sess SessionState) {
	sess.SetAuthenticated(false)
}

// CreateAccess is a placeholder for account creation and never touches the session.
func (g *Gate) CreateAccess(SessionState) Notice {
	return Notice{Kind: "info", Message: MsgAccessSimulated}
}
