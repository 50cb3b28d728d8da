package roster

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riskibarqy/draft-roster/internal/domain/feed"
	"github.com/riskibarqy/draft-roster/internal/platform/id"
	"golang.org/x/text/encoding/charmap"
)

// GeneratedKeyPrefix marks identity keys derived from league, team and name
// for records that carry no upstream id.
const GeneratedKeyPrefix = "gen-"

var statAliases = map[string]string{
	"gp":            "games",
	"games":         "games",
	"matches":       "games",
	"gs":            "games_started",
	"games_started": "games_started",
	"gamesstarted":  "games_started",
	"gol":           "goals",
	"goals":         "goals",
	"g":             "goals",
	"ast":           "assists",
	"assists":       "assists",
	"a":             "assists",
	"pts":           "points",
	"points":        "points",
	"min":           "minutes",
	"minutes":       "minutes",
	"minutesplayed": "minutes",
}

// Normalize maps one source record into the canonical player. The league
// always comes from the descriptor.
func Normalize(desc feed.Descriptor, rec feed.Record) (Player, error) {
	var p Player
	switch r := rec.(type) {
	case feed.ProRecord:
		p = normalizePro(r)
	case *feed.ProRecord:
		p = normalizePro(*r)
	case feed.CollegeRecord:
		p = normalizeCollege(r)
	case *feed.CollegeRecord:
		p = normalizeCollege(*r)
	case feed.HighSchoolRecord:
		p = normalizeHighSchool(r)
	case *feed.HighSchoolRecord:
		p = normalizeHighSchool(*r)
	default:
		return Player{}, fmt.Errorf("unsupported record type %T", rec)
	}

	p.League = orNA(CleanText(desc.League))
	p.Source = desc.Name
	if p.IdentityKey == "" {
		p.IdentityKey = GeneratedKeyPrefix + id.Deterministic(
			strings.ToLower(p.League),
			strings.ToLower(p.Team),
			strings.ToLower(p.Name),
		)
	}
	return p, nil
}

func normalizePro(r feed.ProRecord) Player {
	prof := r.Profile.PlayerProfile
	perf := r.Performance

	games := perf.Matches.Int()
	if games == 0 {
		games = perf.Games.Int()
	}

	return Player{
		IdentityKey: identityKey(r.PlayerID, r.ID),
		Name:        firstText(prof.PlayerName, prof.Name, r.Name),
		Team:        firstText(r.Club.Name, prof.Club),
		Position:    firstText(prof.PlayerMainPosition, prof.Position),
		Nationality: firstText(prof.Nationality, prof.BirthplaceCountry, prof.InternationalTeam),
		Height:      firstText(prof.Height),
		Weight:      firstText(prof.Weight),
		Hometown:    firstText(prof.Birthplace),
		Year:        NotAvailable,
		PhotoURL:    firstText(prof.PlayerImage, prof.PlayerImageURL),
		State:       NotAvailable,
		Commitment:  NotAvailable,
		Type:        TypeTransfer,
		Stats: Stats{
			Games:        games,
			GamesStarted: perf.GamesStarted.Int(),
			Goals:        perf.Goals.Int(),
			Assists:      perf.Assists.Int(),
			Minutes:      perf.MinutesPlayed.Int(),
		},
	}
}

func normalizeCollege(r feed.CollegeRecord) Player {
	return Player{
		IdentityKey: identityKey(r.PlayerID, r.ID),
		Name:        firstText(r.FullName, r.Name),
		Team:        firstText(r.Team),
		Position:    firstText(r.Position),
		Nationality: firstText(r.Nation),
		Height:      firstText(r.Height, r.DataMap.Height),
		Weight:      firstText(r.Weight, r.DataMap.Weight),
		Hometown:    firstText(r.Hometown, r.DataMap.Hometown),
		Year:        firstText(r.Year),
		PhotoURL:    firstText(r.PhotoURL),
		State:       NotAvailable,
		Commitment:  NotAvailable,
		Type:        TypeTransfer,
		Stats:       statsFromMap(r.Stats),
	}
}

func normalizeHighSchool(r feed.HighSchoolRecord) Player {
	return Player{
		IdentityKey: identityKey(r.PlayerID, r.ID),
		Name:        firstText(r.Name),
		Team:        firstText(r.Club),
		Position:    firstText(r.Position),
		Nationality: NotAvailable,
		Height:      firstText(r.Height),
		Weight:      firstText(r.Weight),
		Hometown:    firstText(r.Hometown),
		Year:        firstText(r.GradYear),
		PhotoURL:    firstText(r.PictureURL),
		State:       firstText(r.State),
		Commitment:  firstText(r.Commitment),
		Type:        TypeHighSchool,
	}
}

func statsFromMap(raw map[string]feed.Text) Stats {
	var out Stats
	for key, value := range raw {
		canonical, ok := statAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		n := int(feed.ParseNumber(value.String()))
		switch canonical {
		case "games":
			out.Games = n
		case "games_started":
			out.GamesStarted = n
		case "goals":
			out.Goals = n
		case "assists":
			out.Assists = n
		case "points":
			out.Points = n
		case "minutes":
			out.Minutes = n
		}
	}
	return out
}

func identityKey(candidates ...feed.Text) string {
	for _, c := range candidates {
		if v := c.String(); v != "" && !strings.EqualFold(v, NotAvailable) {
			return v
		}
	}
	return ""
}

func firstText(candidates ...feed.Text) string {
	for _, c := range candidates {
		if v := CleanText(c.String()); !IsMissing(v) {
			return v
		}
	}
	return NotAvailable
}

// CleanText repairs UTF-8 text that was decoded as Windows-1252 upstream,
// strips leftover mojibake runes and collapses whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "ÃÂâ") {
		if repaired, ok := repairDoubleEncoding(s); ok {
			s = repaired
		}
	}
	s = stripMojibake(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMojibake drops U+FFFD and any Â that leads a broken Windows-1252 pair
// (followed by U+0080-U+00BF, whitespace or the end of the text). A Â that
// starts a word, as in "Ângelo", is kept.
func stripMojibake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case r == utf8.RuneError:
			continue
		case r == '\u00a0':
			b.WriteRune(' ')
		case r == 'Â' && (i+1 == len(runes) || isMojibakeTail(runes[i+1])):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isMojibakeTail(r rune) bool {
	return (r >= 0x80 && r <= 0xbf) || unicode.IsSpace(r)
}

func repairDoubleEncoding(s string) (string, bool) {
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) || raw == s {
		return "", false
	}
	return raw, true
}
