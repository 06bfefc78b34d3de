// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "errors"

// Error kinds. Every rejection returned by the ledger matches exactly one of
// these with errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyDone       = errors.New("already done")
	ErrInvalidState      = errors.New("invalid state")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStake = errors.New("insufficient stake") // reserved
)

// Error is a specific rejection carrying its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the error kind e belongs to.
func (e *Error) Kind() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrNotOwner        = newError(ErrUnauthorized, "caller is not the owner")
	ErrNotAdmin        = newError(ErrUnauthorized, "caller is not the owner or emergency admin")
	ErrNotEligible     = newError(ErrUnauthorized, "caller is not an eligible voter")
	ErrInvalidIdentity = newError(ErrUnauthorized, "caller identity is empty or malformed")

	ErrRoundNotFound      = newError(ErrNotFound, "round not found")
	ErrCandidateNotFound  = newError(ErrNotFound, "candidate not found in current round")
	ErrVoterNotFound      = newError(ErrNotFound, "voter is not registered")
	ErrDelegationNotFound = newError(ErrNotFound, "delegation not found")
	ErrProposalNotFound   = newError(ErrNotFound, "proposal not found or inactive")

	ErrAlreadyRegistered = newError(ErrAlreadyDone, "voter is already registered")
	ErrAlreadyVoted      = newError(ErrAlreadyDone, "voter has already voted in this round")
	ErrRoundExists       = newError(ErrAlreadyDone, "round id is already taken; start the pending round first")

	ErrVotingClosed = newError(ErrInvalidState, "voting is closed")
	ErrNotStarted   = newError(ErrInvalidState, "round start time has not been reached")

	ErrTimeRange      = newError(ErrValidation, "end time must be after start time")
	ErrCapacity       = newError(ErrValidation, "round candidate capacity reached")
	ErrSelfDelegation = newError(ErrValidation, "cannot delegate to self")
	ErrDelegationLoop = newError(ErrValidation, "delegate already delegates to caller in this round")
	ErrInvalidInput   = newError(ErrValidation, "invalid input")
	ErrTallyOverflow  = newError(ErrValidation, "vote weight would overflow the tally")

	ErrClockRegression = errors.New("logical clock cannot move backwards")
	ErrClockRange      = errors.New("logical clock height out of range")
)

// KindOf returns the kind of err, or nil when err is not a ledger rejection.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return nil
}
