package model

// State is the lifecycle position of the process-wide session.
type State int

const (
	Uninitialized State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "uninitialized"
}

// Session is a consistent view of the session at one point in time.
// Token is non-empty iff User is non-nil.
type Session struct {
	State State
	User  *User
	Token string
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

func (s Session) Loading() bool {
	return s.State == Uninitialized
}
