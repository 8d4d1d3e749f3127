/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"testing"

	"github.com/mikeb26/swisstd/swiss"
	"github.com/stretchr/testify/require"
)

func entrants(n int) []Entrant {
	ret := make([]Entrant, n)
	for i := range ret {
		ret[i] = Entrant{
			Name:   fmt.Sprintf("p%d", i+1),
			Rating: float64(100 * (n - i)),
		}
	}
	return ret
}

func TestFormTeams(t *testing.T) {
	teams, err := FormTeams(entrants(8), 2)
	require.NoError(t, err)
	require.Len(t, teams, 4)

	want := [][]string{{"p1", "p8"}, {"p2", "p7"}, {"p3", "p6"}, {"p4", "p5"}}
	for i, team := range teams {
		require.Equal(t, swiss.CompetitorID(i+1), team.ID)
		require.Equal(t, want[i], team.Members)
		require.Equal(t, 450.0, team.Rating)
	}
	require.Equal(t, "Team A", teams[0].Name)
	require.Equal(t, "Team D", teams[3].Name)
}

func TestFormTeamsSnake(t *testing.T) {
	teams, err := FormTeams(entrants(9), 3)
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p6", "p7"}, teams[0].Members)
	require.Equal(t, []string{"p2", "p5", "p8"}, teams[1].Members)
	require.Equal(t, []string{"p3", "p4", "p9"}, teams[2].Members)
}

func TestFormTeamsErrors(t *testing.T) {
	_, err := FormTeams(entrants(7), 2)
	require.ErrorIs(t, err, ErrUnevenTeams)

	_, err = FormTeams(entrants(4), 4)
	require.ErrorIs(t, err, ErrTooFewCompetitors)

	_, err = FormTeams(entrants(4), 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMatchBoards(t *testing.T) {
	white := &swiss.Competitor{ID: 1, Members: []string{"a1", "a2", "a3", "a4"}}
	black := &swiss.Competitor{ID: 2, Members: []string{"b1", "b2", "b3", "b4"}}
	boards := matchBoards(3, swiss.Pairing{Board: 2, White: 1, Black: 2},
		white, black, 4)

	require.Len(t, boards, 4)
	require.Equal(t, "a1", boards[0].WhitePlayer)
	require.Equal(t, "a2", boards[1].BlackPlayer)
	require.Equal(t, "b3", boards[2].WhitePlayer)
	require.Equal(t, "a4", boards[3].WhitePlayer)
	for i, b := range boards {
		require.Equal(t, 3, b.Round)
		require.Equal(t, 2, b.Match)
		require.Equal(t, i+1, b.Board)
	}

	g := swiss.GameResult{Round: 3, Board: 2, White: 1, Black: 2}
	tallyMatch(&g, boards)
	require.False(t, g.Reported)

	for i := range boards {
		boards[i].WhitePoints = 1
		boards[i].Reported = true
	}
	tallyMatch(&g, boards)
	require.True(t, g.Reported)
	require.False(t, g.Forfeit)
	require.Equal(t, 2.0, g.WhitePoints)
	require.Equal(t, 2.0, g.BlackPoints)
}
