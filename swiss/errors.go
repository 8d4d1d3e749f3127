/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"fmt"
)

var (
	// ErrPairingInfeasible means the search exhausted every branch without
	// covering the pool.
	ErrPairingInfeasible = errors.New("pairing infeasible")

	// ErrNoEligibleBye means every competitor of an odd pool already holds a
	// bye.
	ErrNoEligibleBye = errors.New("no eligible bye candidate")

	// ErrMalformedHistory means a competitor's opponent and color histories
	// disagree.
	ErrMalformedHistory = errors.New("malformed history")

	ErrInvalidInput = errors.New("invalid input")
)

// PairingError adds round and competitor context to one of the sentinel
// errors above.
type PairingError struct {
	Round      int
	Competitor CompetitorID
	Err        error
}

func (e *PairingError) Error() string {
	if e.Competitor != ByeID {
		return fmt.Sprintf("round %d: competitor %d: %v", e.Round, e.Competitor,
			e.Err)
	}
	return fmt.Sprintf("round %d: %v", e.Round, e.Err)
}

func (e *PairingError) Unwrap() error { return e.Err }
