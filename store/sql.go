/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mikeb26/swisstd/swiss"
	"github.com/mikeb26/swisstd/tournament"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tournamentRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Kind         string
	State        string
	CurrentRound int
	RoundOpen    bool
	Config       tournament.Config    `gorm:"serializer:json"`
	Entrants     []tournament.Entrant `gorm:"serializer:json"`
	Pairings     [][]swiss.Pairing    `gorm:"serializer:json"`
	UpdatedAt    time.Time
}

func (tournamentRow) TableName() string { return "tournaments" }

type competitorRow struct {
	TournamentID    string `gorm:"primaryKey"`
	CompetitorID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Position        int
	Name            string
	ExternalID      string
	Rating          float64
	Score           float64
	SonnebornBerger float64
	Seed            int
	Place           int
	PrevOpponents   []swiss.CompetitorID `gorm:"serializer:json"`
	PrevColors      []swiss.Color        `gorm:"serializer:json"`
	Members         []string             `gorm:"serializer:json"`
}

func (competitorRow) TableName() string { return "competitors" }

type gameRow struct {
	TournamentID string `gorm:"primaryKey"`
	Round        int    `gorm:"primaryKey;autoIncrement:false"`
	Board        int    `gorm:"primaryKey;autoIncrement:false"`
	White        int64
	Black        int64
	WhitePoints  float64
	BlackPoints  float64
	Reported     bool
	Forfeit      bool
	URL          string
}

func (gameRow) TableName() string { return "games" }

type boardRow struct {
	TournamentID string `gorm:"primaryKey"`
	Round        int    `gorm:"primaryKey;autoIncrement:false"`
	MatchNo      int    `gorm:"primaryKey;autoIncrement:false"`
	Board        int    `gorm:"primaryKey;autoIncrement:false"`
	WhiteTeam    int64
	BlackTeam    int64
	WhitePlayer  string
	BlackPlayer  string
	WhitePoints  float64
	BlackPoints  float64
	Reported     bool
	Forfeit      bool
	URL          string
}

func (boardRow) TableName() string { return "boards" }

// SQL keeps tournaments in a SQLite database.
type SQL struct {
	db *gorm.DB
}

// OpenSQL opens (creating if needed) the SQLite database at dsn and migrates
// its schema. dsn may be ":memory:".
func OpenSQL(dsn string) (*SQL, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store.openSQL: failed to open %v: %w", dsn, err)
	}

	// a single connection keeps ":memory:" databases alive and serializes
	// writers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store.openSQL: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&tournamentRow{}, &competitorRow{}, &gameRow{},
		&boardRow{})
	if err != nil {
		return nil, fmt.Errorf("store.openSQL: failed to migrate %v: %w", dsn, err)
	}

	logrus.Debugf("store.openSQL: opened %v", dsn)
	return &SQL{db: db}, nil
}

// Close releases the database connection.
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQL) Load(ctx context.Context, id string) (*tournament.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var row tournamentRow
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tournament.ErrNotFound
		}
		return nil, fmt.Errorf("store.sql.load: %v: %w", id, err)
	}

	snap := &tournament.Snapshot{
		ID:           row.ID,
		Config:       row.Config,
		State:        tournament.State(row.State),
		Entrants:     row.Entrants,
		CurrentRound: row.CurrentRound,
		RoundOpen:    row.RoundOpen,
		Pairings:     row.Pairings,
	}

	var comps []competitorRow
	if err := db.Where("tournament_id = ?", id).Order("position").
		Find(&comps).Error; err != nil {
		return nil, fmt.Errorf("store.sql.load: %v competitors: %w", id, err)
	}
	for _, c := range comps {
		snap.Competitors = append(snap.Competitors, swiss.Competitor{
			ID:              swiss.CompetitorID(c.CompetitorID),
			Name:            c.Name,
			ExternalID:      c.ExternalID,
			Rating:          c.Rating,
			Score:           c.Score,
			SonnebornBerger: c.SonnebornBerger,
			Seed:            c.Seed,
			Place:           c.Place,
			PrevOpponents:   c.PrevOpponents,
			PrevColors:      c.PrevColors,
			Members:         c.Members,
		})
	}

	var games []gameRow
	if err := db.Where("tournament_id = ?", id).Order("round, board").
		Find(&games).Error; err != nil {
		return nil, fmt.Errorf("store.sql.load: %v games: %w", id, err)
	}
	for _, g := range games {
		snap.Games = append(snap.Games, swiss.GameResult{
			Round:       g.Round,
			Board:       g.Board,
			White:       swiss.CompetitorID(g.White),
			Black:       swiss.CompetitorID(g.Black),
			WhitePoints: g.WhitePoints,
			BlackPoints: g.BlackPoints,
			Reported:    g.Reported,
			Forfeit:     g.Forfeit,
			URL:         g.URL,
		})
	}

	var boards []boardRow
	if err := db.Where("tournament_id = ?", id).Order("round, match_no, board").
		Find(&boards).Error; err != nil {
		return nil, fmt.Errorf("store.sql.load: %v boards: %w", id, err)
	}
	for _, b := range boards {
		snap.Boards = append(snap.Boards, tournament.BoardResult{
			Round:       b.Round,
			Match:       b.MatchNo,
			Board:       b.Board,
			WhiteTeam:   swiss.CompetitorID(b.WhiteTeam),
			BlackTeam:   swiss.CompetitorID(b.BlackTeam),
			WhitePlayer: b.WhitePlayer,
			BlackPlayer: b.BlackPlayer,
			WhitePoints: b.WhitePoints,
			BlackPoints: b.BlackPoints,
			Reported:    b.Reported,
			Forfeit:     b.Forfeit,
			URL:         b.URL,
		})
	}

	return snap, nil
}

// Save replaces everything stored for the snapshot's tournament in one
// transaction.
func (s *SQL) Save(ctx context.Context, snap *tournament.Snapshot) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := tournamentRow{
			ID:           snap.ID,
			Name:         snap.Config.Name,
			Kind:         string(snap.Config.Kind),
			State:        string(snap.State),
			CurrentRound: snap.CurrentRound,
			RoundOpen:    snap.RoundOpen,
			Config:       snap.Config,
			Entrants:     snap.Entrants,
			Pairings:     snap.Pairings,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		for _, model := range []any{&competitorRow{}, &gameRow{}, &boardRow{}} {
			if err := tx.Where("tournament_id = ?", snap.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		comps := make([]competitorRow, len(snap.Competitors))
		for i, c := range snap.Competitors {
			comps[i] = competitorRow{
				TournamentID:    snap.ID,
				CompetitorID:    int64(c.ID),
				Position:        i,
				Name:            c.Name,
				ExternalID:      c.ExternalID,
				Rating:          c.Rating,
				Score:           c.Score,
				SonnebornBerger: c.SonnebornBerger,
				Seed:            c.Seed,
				Place:           c.Place,
				PrevOpponents:   c.PrevOpponents,
				PrevColors:      c.PrevColors,
				Members:         c.Members,
			}
		}
		if len(comps) > 0 {
			if err := tx.CreateInBatches(comps, 100).Error; err != nil {
				return err
			}
		}

		games := make([]gameRow, len(snap.Games))
		for i, g := range snap.Games {
			games[i] = gameRow{
				TournamentID: snap.ID,
				Round:        g.Round,
				Board:        g.Board,
				White:        int64(g.White),
				Black:        int64(g.Black),
				WhitePoints:  g.WhitePoints,
				BlackPoints:  g.BlackPoints,
				Reported:     g.Reported,
				Forfeit:      g.Forfeit,
				URL:          g.URL,
			}
		}
		if len(games) > 0 {
			if err := tx.CreateInBatches(games, 100).Error; err != nil {
				return err
			}
		}

		boards := make([]boardRow, len(snap.Boards))
		for i, b := range snap.Boards {
			boards[i] = boardRow{
				TournamentID: snap.ID,
				Round:        b.Round,
				MatchNo:      b.Match,
				Board:        b.Board,
				WhiteTeam:    int64(b.WhiteTeam),
				BlackTeam:    int64(b.BlackTeam),
				WhitePlayer:  b.WhitePlayer,
				BlackPlayer:  b.BlackPlayer,
				WhitePoints:  b.WhitePoints,
				BlackPoints:  b.BlackPoints,
				Reported:     b.Reported,
				Forfeit:      b.Forfeit,
				URL:          b.URL,
			}
		}
		if len(boards) > 0 {
			if err := tx.CreateInBatches(boards, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store.sql.save: %v: %w", snap.ID, err)
	}
	return nil
}

func (s *SQL) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&tournamentRow{}).Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("store.sql.list: %w", err)
	}
	return ids, nil
}
