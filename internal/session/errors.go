package session

import "errors"

// Sentinel errors for session operations. External-service failures are not
// represented here: they pass through wrapped as advisor errors.
var (
	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match. The two cases are
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoActiveProfile is returned when analysis is requested and the
	// account has no usable profile.
	ErrNoActiveProfile = errors.New("no active profile")

	// ErrJobNotFound is returned when a lead id does not exist in the
	// account's history.
	ErrJobNotFound = errors.New("job not found")

	// ErrConfirmRequired guards destructive operations. There is no undo.
	ErrConfirmRequired = errors.New("confirmation required")

	// ErrNoSuggestion is returned by AcceptSuggestion when no follow-up
	// suggestion is pending.
	ErrNoSuggestion = errors.New("no pending suggestion")
)
