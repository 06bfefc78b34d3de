// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the governance voting state machine.

# Usage

	l := ledger.New(conn, ledger.NewManualClock(0), ledger.WithLogger(logger))
	if err := l.Init(ctx, genesis); err != nil {
		log.Fatal(err)
	}

	roundID, err := l.CreateRound(ctx, owner, ledger.NewRound{...})

Every operation takes the caller identity explicitly. Callers are untrusted;
the ledger checks each one against the owner, the emergency admin or the
voter registry as the operation requires.

# Atomicity

Mutating operations hold a single writer lock and run in one SQL
transaction. A rejected operation rolls back every write it attempted, so
concurrent callers always observe some serial order of whole operations.
Reads use their own transaction and do not take the lock.

# Vote Lifecycle

	not started ──StartRound──▶ open ──height > end / EmergencyPause──▶ closed

Only the global current-round pointer decides which round accepts votes.
A voter votes at most once per round; the vote adds 1 to the candidate's
count and the effective weight to its weighted count, and appends an audit
entry with the next audit id.

# Weights

Candidate votes weigh 1 unless token voting was enabled at genesis, in which
case the caller-supplied base weight is used unchecked. Proposal votes weigh
1 + stake/1000 for registered voters.

# Known Limitations

  - Delegation loop detection only catches direct reciprocal delegation.
  - Delegation is recorded but never changes vote weight.
  - Proposal votes are not deduplicated per caller.
  - Proposals are never executed.

# Errors

Rejections are *Error values wrapping one of the kind sentinels
(ErrUnauthorized, ErrNotFound, ErrAlreadyDone, ErrInvalidState,
ErrValidation). Anything else is an infrastructure failure.

	if errors.Is(err, ledger.ErrAlreadyDone) { ... }
*/
package ledger
