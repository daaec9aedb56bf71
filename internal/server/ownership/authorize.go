package ownership

import (
	"errors"
	"fmt"
)

// Kind describes one resource domain.
type Kind struct {
	Name                string
	AllowsSystemDefault bool
}

var (
	Symptom    = Kind{Name: "symptom", AllowsSystemDefault: true}
	Habit      = Kind{Name: "habit", AllowsSystemDefault: true}
	Medication = Kind{Name: "medication", AllowsSystemDefault: false}
	Log        = Kind{Name: "log", AllowsSystemDefault: false}
)

// Classification is the relation between a row and the requester.
type Classification int

const (
	SystemDefault Classification = iota + 1
	OwnedByRequester
	OwnedByOther
)

func (c Classification) String() string {
	switch c {
	case SystemDefault:
		return "system-default"
	case OwnedByRequester:
		return "owned-by-requester"
	case OwnedByOther:
		return "owned-by-other"
	}
	return "unknown"
}

// Operation is what the requester wants to do with the row.
type Operation int

const (
	OpRead Operation = iota + 1
	OpUpdate
	OpDelete
	// OpLog creates a log entry referencing the row.
	OpLog
)

// DeniedError carries the reason a request was refused.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// ErrHidden is returned for reads of rows the requester may not see. Callers
// report it exactly like a missing row.
var ErrHidden = errors.New("row is not visible to the requester")

func deny(format string, args ...any) error {
	return &DeniedError{Reason: fmt.Sprintf(format, args...)}
}

// Classify relates owner to requesterID. A System owner on a kind without
// system defaults is treated as someone else's row.
func Classify(kind Kind, owner Owner, requesterID string) Classification {
	if owner.IsSystem() {
		if kind.AllowsSystemDefault {
			return SystemDefault
		}
		return OwnedByOther
	}
	if requesterID != "" && owner.UserID() == requesterID {
		return OwnedByRequester
	}
	return OwnedByOther
}

// Decide returns nil when op is allowed, ErrHidden for reads of invisible
// rows, or a *DeniedError. Not-found must be handled by the caller before
// calling Classify.
func Decide(op Operation, c Classification, kind Kind) error {
	if kind == Log {
		return decideLog(op, c)
	}

	switch op {
	case OpUpdate, OpDelete:
		verb := "modify"
		if op == OpDelete {
			verb = "delete"
		}
		switch c {
		case SystemDefault:
			return deny("Cannot %s system default %s", verb, kind.Name)
		case OwnedByRequester:
			return nil
		default:
			return deny("Cannot %s another user's %s", verb, kind.Name)
		}
	case OpLog:
		if c == SystemDefault || c == OwnedByRequester {
			return nil
		}
		return deny("Cannot log another user's %s", kind.Name)
	case OpRead:
		if Visible(c) {
			return nil
		}
		return ErrHidden
	}
	return deny("Operation not permitted")
}

func decideLog(op Operation, c Classification) error {
	if c == OwnedByRequester {
		return nil
	}
	switch op {
	case OpDelete:
		return deny("Cannot delete another user's log")
	case OpRead:
		return ErrHidden
	default:
		return deny("Cannot modify another user's log")
	}
}

// Visible reports whether a row with classification c may appear in the
// requester's reads.
func Visible(c Classification) bool {
	return c == SystemDefault || c == OwnedByRequester
}

// Authorize is Classify followed by Decide.
func Authorize(op Operation, kind Kind, owner Owner, requesterID string) error {
	return Decide(op, Classify(kind, owner, requesterID), kind)
}
