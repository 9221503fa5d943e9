package progression

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidResult     = errors.New("invalid result, expected YES or NO")
	ErrWorkoutInProgress = errors.New("a workout is already in progress")
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// CodeDuplicateResult: the day already has a committed YES for the machine.
	CodeDuplicateResult ErrorCode = "DUPLICATE_RESULT"

	// CodeEmptyWorkout: the template resolves to no existing machine.
	CodeEmptyWorkout ErrorCode = "EMPTY_WORKOUT"

	// CodeNotFound: a referenced machine, template, session or workout item is missing.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeConfirmationRequired: a destructive action needs to be proposed again with Confirm set.
	CodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
)

// Error is returned by engine operations whose preconditions are unmet.
// None of them leave partial state behind.
type Error struct {
	Code    ErrorCode
	Message string

	// Kind and Ref identify the entity the error is about ("machine", "workout", ...).
	Kind string
	Ref  string
}

func (e *Error) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s (%s %s)", e.Message, e.Kind, e.Ref)
	}
	return e.Message
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func IsDuplicate(err error) bool { return hasCode(err, CodeDuplicateResult) }

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

func IsEmptyWorkout(err error) bool { return hasCode(err, CodeEmptyWorkout) }

// NeedsConfirmation reports whether err asks the caller to confirm and retry.
func NeedsConfirmation(err error) bool { return hasCode(err, CodeConfirmationRequired) }

func DuplicateResultError(machineID, date string) *Error {
	return &Error{
		Code:    CodeDuplicateResult,
		Message: fmt.Sprintf("only one YES per machine per day (%s already logged)", date),
		Kind:    "machine",
		Ref:     machineID,
	}
}

func EmptyWorkoutError(workoutID string) *Error {
	return &Error{
		Code:    CodeEmptyWorkout,
		Message: "workout has no machines",
		Kind:    "workout",
		Ref:     workoutID,
	}
}

func NotFoundError(kind, ref string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: kind + " not found",
		Kind:    kind,
		Ref:     ref,
	}
}

func ConfirmationRequiredError(action string) *Error {
	return &Error{
		Code:    CodeConfirmationRequired,
		Message: "confirmation required: " + action,
	}
}
