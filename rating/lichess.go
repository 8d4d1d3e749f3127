/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/swiss"
)

const LichessURL = "https://lichess.org"

// ErrGameInProgress is returned by GameResult for games without a result.
var ErrGameInProgress = errors.New("rating: game has no result yet")

// Lichess reads ratings and finished games from the lichess.org API.
type Lichess struct {
	httpClient *http.Client
	baseURL    string
}

// NewLichess returns a Lichess client using httpClient. An empty baseURL
// means LichessURL.
func NewLichess(httpClient *http.Client, baseURL string) *Lichess {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = LichessURL
	}
	return &Lichess{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (l *Lichess) Name() string {
	return "lichess"
}

type lichessUser struct {
	ID    string `json:"id"`
	Perfs map[string]struct {
		Rating int  `json:"rating"`
		Games  int  `json:"games"`
		Prov   bool `json:"prov"`
	} `json:"perfs"`
}

func lichessPerf(cat Category) string {
	if cat == UltraBullet {
		return "ultraBullet"
	}
	return string(cat)
}

// Rating returns the username's rating in cat.
func (l *Lichess) Rating(ctx context.Context, username string,
	cat Category) (float64, error) {

	endpoint := fmt.Sprintf("%v/api/user/%v", l.baseURL, url.PathEscape(username))
	body, err := l.get(ctx, endpoint, "application/json")
	if err != nil {
		return 0, fmt.Errorf("rating.lichess: user %v: %w", username, err)
	}
	defer body.Close()

	var user lichessUser
	if err := json.NewDecoder(body).Decode(&user); err != nil {
		return 0, fmt.Errorf("rating.lichess: decoding user %v: %w", username, err)
	}

	perf, ok := user.Perfs[lichessPerf(cat)]
	if !ok {
		return 0, nil
	}
	return float64(perf.Rating), nil
}

var pgnResultTag = regexp.MustCompile(`\[Result "([^"]*)"\]`)

// GameResult reads the Result tag of a finished game's PGN export.
func (l *Lichess) GameResult(ctx context.Context,
	gameID string) (white float64, black float64, err error) {

	endpoint := fmt.Sprintf("%v/game/export/%v", l.baseURL, url.PathEscape(gameID))
	body, err := l.get(ctx, endpoint, "application/x-chess-pgn")
	if err != nil {
		return 0, 0, fmt.Errorf("rating.lichess: game %v: %w", gameID, err)
	}
	defer body.Close()

	pgn, err := io.ReadAll(body)
	if err != nil {
		return 0, 0, fmt.Errorf("rating.lichess: reading game %v: %w", gameID, err)
	}

	m := pgnResultTag.FindSubmatch(pgn)
	if m == nil {
		return 0, 0, fmt.Errorf("rating.lichess: game %v has no Result tag", gameID)
	}
	result := string(m[1])
	if result == "*" {
		return 0, 0, fmt.Errorf("rating.lichess: game %v: %w", gameID,
			ErrGameInProgress)
	}

	return swiss.ParseResult(result)
}

// GameURL returns the public page for gameID.
func (l *Lichess) GameURL(gameID string) string {
	return fmt.Sprintf("%v/%v", l.baseURL, gameID)
}

func (l *Lichess) get(ctx context.Context, endpoint string,
	accept string) (io.ReadCloser, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing HTTP GET: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode,
			string(data))
	}
}
