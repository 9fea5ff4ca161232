package season

import "errors"

// Sentinel error kinds. Per the propagation policy, UnknownTeam,
// UnknownConference, and InconsistentForcing are raised immediately to the
// caller without mutating any accumulator; ForcingConflict and
// SnapshotMalformed abort construction of the value being built.
var (
	ErrUnknownTeam         = errors.New("unknown team")
	ErrUnknownConference   = errors.New("unknown conference")
	ErrInconsistentForcing = errors.New("inconsistent forcing")
	ErrForcingConflict     = errors.New("forcing conflict")
	ErrScenarioInvalid     = errors.New("scenario invalid")
	ErrIndeterminate       = errors.New("indeterminate tiebreaker")
	ErrSnapshotMalformed   = errors.New("snapshot malformed")
)
