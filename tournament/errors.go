/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import "errors"

var (
	// ErrNotFound is returned by a Store when no tournament has the id.
	ErrNotFound = errors.New("tournament: not found")

	ErrInvalidConfig       = errors.New("tournament: invalid config")
	ErrWrongState          = errors.New("tournament: operation not allowed in current state")
	ErrRegistrationClosed  = errors.New("tournament: registration is closed")
	ErrDuplicateEntrant    = errors.New("tournament: already entered")
	ErrTooFewCompetitors   = errors.New("tournament: not enough competitors")
	ErrUnevenTeams         = errors.New("tournament: entrants do not divide into full teams")
	ErrRoundOpen           = errors.New("tournament: current round is still open")
	ErrNoRoundOpen         = errors.New("tournament: no round is open")
	ErrAllRoundsPlayed     = errors.New("tournament: all rounds have been played")
	ErrNoSuchGame          = errors.New("tournament: no such game")
	ErrWrongTournamentKind = errors.New("tournament: not supported for this kind of tournament")
)
