/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rating

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swisstd/internal"
)

const USChessURL = "https://www.uschess.org/msa"

// USChess scrapes USCF member ratings from the MSA member detail page.
type USChess struct {
	httpClient *http.Client
	baseURL    string
}

// NewUSChess returns a USChess client using httpClient. An empty baseURL
// means USChessURL.
func NewUSChess(httpClient *http.Client, baseURL string) *USChess {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = USChessURL
	}
	return &USChess{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (u *USChess) Name() string {
	return "uschess"
}

// USCF keeps three over-the-board pools; faster lichess categories map to
// blitz.
func uschessField(cat Category) string {
	switch cat {
	case Classical:
		return "rating1"
	case Rapid:
		return "rating2"
	default:
		return "rating3"
	}
}

// Rating returns the member's published rating for cat, or 0 when the
// member is unrated in that pool.
func (u *USChess) Rating(ctx context.Context, memberID string,
	cat Category) (float64, error) {

	endpoint := fmt.Sprintf("%v/thin3.php?%v", u.baseURL,
		url.QueryEscape(memberID))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("rating.uschess: creating request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rating.uschess: performing HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("rating.uschess: unexpected status %d: %s",
			resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("rating.uschess: parsing HTML: %w", err)
	}

	return parseMemberRating(memberID, doc, uschessField(cat))
}

func inputValue(doc *goquery.Document, name string) string {
	val, _ := doc.Find(fmt.Sprintf("input[name='%v']", name)).First().Attr("value")
	return strings.TrimSpace(val)
}

func parseMemberRating(memberID string, doc *goquery.Document,
	field string) (float64, error) {

	if inputValue(doc, "memname") == "" {
		return 0, fmt.Errorf("rating.uschess: member %v: %w", memberID, ErrNotFound)
	}

	// e.g. "1624* 2024-01-01" or "Unrated"
	raw := inputValue(doc, field)
	digits := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		digits = digits[:end]
	}
	if digits == "" {
		return 0, nil
	}

	r, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("rating.uschess: member %v: bad rating %q: %w",
			memberID, raw, err)
	}
	return float64(r), nil
}
