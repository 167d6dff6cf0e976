package auth

// State is the position of a session in the gate state machine.
type State int

const (
	// Unauthenticated is the initial state; only the login view is reachable.
	Unauthenticated State = iota
	// Authenticated unlocks the dashboard views.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// SessionState is the per-session flag the gate reads and mutates.
type SessionState interface {
	Authenticated() bool
	SetAuthenticated(bool)
}

// Credentials is a login submission. Only emptiness is checked: any two
// non-empty strings, whitespace included, pass the gate.
type Credentials struct {
	Identifier string `validate:"required"`
	Secret     string `validate:"required"`
}

// Notice is an informational message that carries no state change.
type Notice struct {
	Kind    string
	Message string
}

// User-facing texts of the login screen.
const (
	MsgEmptyFields     = "Preencha os campos para acessar."
	MsgAccessSimulated = "Funcionalidade de cadastro simulada."
	MsgWelcome         = "Bem-vindo ao painel TrackingGT."
)
