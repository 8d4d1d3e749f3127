/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/rating"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	Individual Kind = "individual"
	Team       Kind = "team"
)

type RatingSource string

const (
	RatingLichess RatingSource = "lichess"
	RatingUSChess RatingSource = "uschess"
	RatingNone    RatingSource = "none"
)

// Config describes a tournament as written by its director.
type Config struct {
	Name              string          `json:"name"`
	Kind              Kind            `json:"kind"`
	TimeControl       string          `json:"timeControl"`
	Category          rating.Category `json:"category"`
	Rounds            int             `json:"rounds"`
	TeamSize          int             `json:"teamSize,omitempty"`
	RatingSource      RatingSource    `json:"ratingSource"`
	StartDate         time.Time       `json:"startDate"`
	RegistrationClose time.Time       `json:"registrationClose"`
}

// dates are kept as strings so they can be written in any format dateparse
// understands
type yamlConfig struct {
	Name              string `yaml:"name"`
	Kind              string `yaml:"kind"`
	TimeControl       string `yaml:"timeControl"`
	Rounds            int    `yaml:"rounds"`
	TeamSize          int    `yaml:"teamSize"`
	RatingSource      string `yaml:"ratingSource"`
	StartDate         string `yaml:"startDate"`
	RegistrationClose string `yaml:"registrationClose"`
}

// LoadConfig reads and validates a YAML tournament definition.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tournament.loadConfig: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("tournament.loadConfig: %v: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML tournament definition.
func ParseConfig(data []byte) (Config, error) {
	var raw yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Name:         strings.TrimSpace(raw.Name),
		Kind:         Kind(strings.ToLower(strings.TrimSpace(raw.Kind))),
		TimeControl:  strings.TrimSpace(raw.TimeControl),
		Rounds:       raw.Rounds,
		TeamSize:     raw.TeamSize,
		RatingSource: RatingSource(strings.ToLower(strings.TrimSpace(raw.RatingSource))),
	}

	var err error
	cfg.StartDate, err = internal.ParseDateOrZero(raw.StartDate)
	if err != nil {
		return Config{}, fmt.Errorf("%w: startDate: %v", ErrInvalidConfig, err)
	}
	cfg.RegistrationClose, err = internal.ParseDateOrZero(raw.RegistrationClose)
	if err != nil {
		return Config{}, fmt.Errorf("%w: registrationClose: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fills defaults and checks cfg for consistency.
func (cfg *Config) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if cfg.Kind == "" {
		cfg.Kind = Individual
	}
	if cfg.RatingSource == "" {
		cfg.RatingSource = RatingLichess
	}

	switch cfg.Kind {
	case Individual:
		cfg.TeamSize = 0
	case Team:
		if cfg.TeamSize < 1 {
			return fmt.Errorf("%w: teamSize must be at least 1", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, cfg.Kind)
	}

	switch cfg.RatingSource {
	case RatingLichess, RatingUSChess, RatingNone:
	default:
		return fmt.Errorf("%w: unknown ratingSource %q", ErrInvalidConfig,
			cfg.RatingSource)
	}

	if cfg.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1", ErrInvalidConfig)
	}

	cat, err := rating.CategoryFromTimeControl(cfg.TimeControl)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Category = cat

	if !cfg.RegistrationClose.IsZero() && !cfg.StartDate.IsZero() &&
		cfg.RegistrationClose.After(cfg.StartDate) {
		return fmt.Errorf("%w: registrationClose is after startDate", ErrInvalidConfig)
	}

	return nil
}

// RatingProvider returns the provider for cfg.RatingSource, fetching with
// client.
func (cfg *Config) RatingProvider(client *http.Client) (rating.Provider, error) {
	switch cfg.RatingSource {
	case RatingLichess:
		return rating.NewLichess(client, ""), nil
	case RatingUSChess:
		return rating.NewUSChess(client, ""), nil
	default:
		return nil, fmt.Errorf("%w: ratingSource %v does not look up ratings",
			ErrInvalidConfig, cfg.RatingSource)
	}
}

// ByePoints is what a bye is worth: one game, or one match of TeamSize
// boards.
func (cfg *Config) ByePoints() float64 {
	if cfg.Kind == Team {
		return float64(cfg.TeamSize)
	}
	return 1
}

// ID derives the tournament's storage id from its name, e.g.
// "Spring Blitz #2" -> "spring-blitz-2".
func (cfg *Config) ID() string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, internal.NormalizeName(cfg.Name))
}
