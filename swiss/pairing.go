/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// GeneratePairings pairs one round. competitors must be in place order (best
// first). When the pool is odd the bye goes to the lowest placed competitor
// without a previous bye. Every other competitor is paired with the best
// placed opponent that
//
//   - they have not met before,
//   - the color rule can seat without leaving the [-2, 2] balance range, and
//   - leaves the rest of the pool pairable under the same rules.
//
// The input is never modified. On success the returned Round carries copies
// of the competitors with this round's opponent and color appended.
func GeneratePairings(competitors []Competitor, round int) (*Round, error) {
	if err := validate(competitors, round); err != nil {
		return nil, err
	}

	bye, err := byeIndex(competitors)
	if err != nil {
		return nil, &PairingError{Round: round, Err: err}
	}

	pool := make([]int, 0, len(competitors))
	for i := range competitors {
		if i != bye {
			pool = append(pool, i)
		}
	}

	s := newSearch(competitors, pool, round)
	if !s.run(0) {
		return nil, &PairingError{
			Round:      round,
			Competitor: competitors[pool[s.stuck()]].ID,
			Err:        ErrPairingInfeasible,
		}
	}

	ret := &Round{
		Number:      round,
		Competitors: cloneAll(competitors),
	}
	for n, pr := range s.pairs {
		first := &ret.Competitors[pool[pr[0]]]
		second := &ret.Competitors[pool[pr[1]]]
		p := Pairing{Board: n + 1}
		if firstIsWhite(s.balance[pr[0]], s.balance[pr[1]], round) {
			p.White, p.Black = first.ID, second.ID
			first.PrevColors = append(first.PrevColors, White)
			second.PrevColors = append(second.PrevColors, Black)
		} else {
			p.White, p.Black = second.ID, first.ID
			first.PrevColors = append(first.PrevColors, Black)
			second.PrevColors = append(second.PrevColors, White)
		}
		first.PrevOpponents = append(first.PrevOpponents, second.ID)
		second.PrevOpponents = append(second.PrevOpponents, first.ID)
		ret.Pairings = append(ret.Pairings, p)
	}
	if bye >= 0 {
		c := &ret.Competitors[bye]
		c.PrevOpponents = append(c.PrevOpponents, ByeID)
		c.PrevColors = append(c.PrevColors, ByeColor)
		ret.Pairings = append(ret.Pairings, Pairing{
			White:        c.ID,
			Black:        ByeID,
			IsByePairing: true,
		})
	}

	return ret, nil
}

// ValidateHistory checks a single competitor's history for internal
// consistency.
func ValidateHistory(c *Competitor) error {
	if len(c.PrevOpponents) != len(c.PrevColors) {
		return fmt.Errorf("%w: %v has %d opponents but %d colors",
			ErrMalformedHistory, c, len(c.PrevOpponents), len(c.PrevColors))
	}
	for i, opp := range c.PrevOpponents {
		if !c.PrevColors[i].valid() {
			return fmt.Errorf("%w: %v round %d has unknown color %d",
				ErrMalformedHistory, c, i+1, int(c.PrevColors[i]))
		}
		if (opp == ByeID) != (c.PrevColors[i] == ByeColor) {
			return fmt.Errorf("%w: %v round %d opponent %d color %v",
				ErrMalformedHistory, c, i+1, opp, c.PrevColors[i])
		}
	}
	return nil
}

func validate(competitors []Competitor, round int) error {
	if round < 1 {
		return &PairingError{Round: round,
			Err: fmt.Errorf("%w: round must be at least 1", ErrInvalidInput)}
	}
	seen := make(map[CompetitorID]bool, len(competitors))
	for i := range competitors {
		c := &competitors[i]
		if c.ID <= ByeID {
			return &PairingError{Round: round, Competitor: c.ID,
				Err: fmt.Errorf("%w: competitor id must be positive",
					ErrInvalidInput)}
		}
		if seen[c.ID] {
			return &PairingError{Round: round, Competitor: c.ID,
				Err: fmt.Errorf("%w: duplicate competitor id", ErrInvalidInput)}
		}
		seen[c.ID] = true
		if err := ValidateHistory(c); err != nil {
			return &PairingError{Round: round, Competitor: c.ID, Err: err}
		}
	}
	return nil
}

// search is the backtracking state for one round. Positions refer to the
// pool (bye removed) in place order; the arena of competitors is never
// copied, only the paired set changes while exploring.
type search struct {
	round   int
	size    int
	balance []int
	played  []bitset
	paired  bitset
	pairs   [][2]int

	// paired sets already known to leave the remainder unpairable
	dead map[string]struct{}
}

func newSearch(competitors []Competitor, pool []int, round int) *search {
	s := &search{
		round:   round,
		size:    len(pool),
		balance: make([]int, len(pool)),
		played:  make([]bitset, len(pool)),
		paired:  newBitset(len(pool)),
		pairs:   make([][2]int, 0, len(pool)/2),
		dead:    make(map[string]struct{}),
	}

	pos := make(map[CompetitorID]int, len(pool))
	for p, idx := range pool {
		pos[competitors[idx].ID] = p
	}
	for p, idx := range pool {
		c := &competitors[idx]
		s.balance[p] = ColorBalance(c.PrevColors)
		s.played[p] = newBitset(len(pool))
		for _, opp := range c.PrevOpponents {
			if q, ok := pos[opp]; ok {
				s.played[p].set(q)
			}
		}
	}
	// a repeat is forbidden if either side recorded it
	for p := range s.played {
		for q := range s.played {
			if s.played[p].has(q) {
				s.played[q].set(p)
			}
		}
	}

	return s
}

func (s *search) legal(a, b int) bool {
	if s.played[a].has(b) {
		return false
	}
	return colorsCompatible(s.balance[a], s.balance[b], s.round)
}

// run pairs every position from 'from' onward. All positions before 'from'
// are already paired when it is called.
func (s *search) run(from int) bool {
	a := from
	for a < s.size && s.paired.has(a) {
		a++
	}
	if a == s.size {
		return true
	}

	key := s.paired.key()
	if _, ok := s.dead[key]; ok {
		return false
	}

	s.paired.set(a)
	for b := a + 1; b < s.size; b++ {
		if s.paired.has(b) || !s.legal(a, b) {
			continue
		}
		s.paired.set(b)
		s.pairs = append(s.pairs, [2]int{a, b})
		if s.run(a + 1) {
			return true
		}
		s.pairs = s.pairs[:len(s.pairs)-1]
		s.paired.clear(b)
	}
	s.paired.clear(a)

	s.dead[key] = struct{}{}
	return false
}

// stuck picks the position to blame for an infeasible round: the first one
// with no legal opponent at all, or else the top of the pool.
func (s *search) stuck() int {
	for a := 0; a < s.size; a++ {
		found := false
		for b := 0; b < s.size && !found; b++ {
			found = a != b && s.legal(min(a, b), max(a, b))
		}
		if !found {
			return a
		}
	}
	return 0
}
