package rosterpage

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-roster/internal/domain/roster"
)

// Roster pages come from many CMS vendors. The first selector that matches
// anything wins; plain table rows are the fallback.
var playerSelectors = []string{
	".roster-player",
	".player-card",
	".roster-row",
	"tr[data-player]",
	".player-info",
	".athlete-card",
}

var (
	nameClass     = classPattern("name", "player-name")
	positionClass = classPattern("position", "pos")
	heightClass   = classPattern("height", "ht")
	weightClass   = classPattern("weight", "wt")
	hometownClass = classPattern("hometown", "home", "city")
)

// classPattern matches a class token that is one of words, optionally as a
// dash or underscore separated part ("player-height", "sidearm_roster_ht").
func classPattern(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[-_])(` + strings.Join(words, "|") + `)($|[-_])`)
}

// Parse extracts one detail row per player element. Rows without a name are
// dropped.
func Parse(r io.Reader, team, pageURL string) ([]roster.Detail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "parse roster page")
	}

	base, _ := url.Parse(strings.TrimSpace(pageURL))
	rows := playerRows(doc)

	out := make([]roster.Detail, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		name := nameOf(row)
		if name == "" {
			return
		}
		out = append(out, roster.Detail{
			Name:     name,
			Team:     team,
			Position: classText(row, positionClass),
			PhotoURL: photoOf(row, base),
			Height:   classText(row, heightClass),
			Weight:   classText(row, weightClass),
			Hometown: classText(row, hometownClass),
		})
	})
	return out, nil
}

func playerRows(doc *goquery.Document) *goquery.Selection {
	for _, selector := range playerSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Find("td").Length() > 0
	})
}

func nameOf(row *goquery.Selection) string {
	if v := classText(row.Find("a, span, td"), nameClass); v != "" {
		return v
	}
	return roster.CleanText(row.Find("a, span, td").First().Text())
}

// classText returns the text of the first element under sel (or sel itself)
// carrying a class token that matches pattern.
func classText(sel *goquery.Selection, pattern *regexp.Regexp) string {
	candidates := sel.Find("td, span, div, a").AddSelection(sel)
	match := candidates.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasClass(s, pattern)
	}).First()
	if match.Length() == 0 {
		return ""
	}
	return roster.CleanText(match.Text())
}

func hasClass(s *goquery.Selection, pattern *regexp.Regexp) bool {
	classes, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, class := range strings.Fields(classes) {
		if pattern.MatchString(class) {
			return true
		}
	}
	return false
}

func photoOf(row *goquery.Selection, base *url.URL) string {
	img := row.Find("img").First()
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src == "" {
		src = strings.TrimSpace(img.AttrOr("data-src", ""))
	}
	if src == "" || base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
