package feed

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Schema names the record layout a feed publishes.
type Schema string

const (
	SchemaPro        Schema = "pro"
	SchemaCollege    Schema = "college"
	SchemaHighSchool Schema = "highschool"
)

func (s Schema) Valid() bool {
	switch s {
	case SchemaPro, SchemaCollege, SchemaHighSchool:
		return true
	default:
		return false
	}
}

// Descriptor identifies one upstream feed. Exactly one of URL or Path is set.
type Descriptor struct {
	Name   string `json:"name"`
	League string `json:"league"`
	Schema Schema `json:"schema"`
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

func (d Descriptor) Location() string {
	if strings.TrimSpace(d.URL) != "" {
		return strings.TrimSpace(d.URL)
	}
	return strings.TrimSpace(d.Path)
}

func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("feed name is required")
	}
	if strings.TrimSpace(d.League) == "" {
		return fmt.Errorf("feed %s: league is required", d.Name)
	}
	if !d.Schema.Valid() {
		return fmt.Errorf("feed %s: unknown schema %q", d.Name, d.Schema)
	}
	hasURL := strings.TrimSpace(d.URL) != ""
	hasPath := strings.TrimSpace(d.Path) != ""
	if hasURL == hasPath {
		return fmt.Errorf("feed %s: exactly one of url or path is required", d.Name)
	}
	return nil
}

// Record is one source record in its feed's own shape. The concrete type is
// one of ProRecord, CollegeRecord or HighSchoolRecord.
type Record interface {
	Schema() Schema
}

type ProRecord struct {
	ID          Text           `json:"id"`
	PlayerID    Text           `json:"playerId"`
	Name        Text           `json:"name"`
	Club        ProClub        `json:"club"`
	Performance ProPerformance `json:"performance"`
	Profile     ProProfile     `json:"profile"`
}

type ProClub struct {
	Name Text `json:"name"`
}

type ProPerformance struct {
	Matches       Number `json:"matches"`
	Games         Number `json:"games"`
	GamesStarted  Number `json:"gamesStarted"`
	Goals         Number `json:"goals"`
	Assists       Number `json:"assists"`
	MinutesPlayed Number `json:"minutesPlayed"`
}

type ProProfile struct {
	PlayerProfile ProPlayerProfile `json:"playerProfile"`
}

type ProPlayerProfile struct {
	PlayerName         Text `json:"playerName"`
	Name               Text `json:"name"`
	Club               Text `json:"club"`
	League             Text `json:"league"`
	PlayerMainPosition Text `json:"playerMainPosition"`
	Position           Text `json:"position"`
	Nationality        Text `json:"nationality"`
	BirthplaceCountry  Text `json:"birthplaceCountry"`
	Birthplace         Text `json:"birthplace"`
	Height             Text `json:"height"`
	Weight             Text `json:"weight"`
	DateOfBirth        Text `json:"dateOfBirth"`
	PlayerImage        Text `json:"playerImage"`
	PlayerImageURL     Text `json:"imageUrl"`
	PlayerShirtNumber  Text `json:"playerShirtNumber"`
	InternationalTeam  Text `json:"internationalTeam"`
}

func (ProRecord) Schema() Schema { return SchemaPro }

type CollegeRecord struct {
	PlayerID Text            `json:"playerId"`
	ID       Text            `json:"id"`
	Name     Text            `json:"name"`
	FullName Text            `json:"fullName"`
	Team     Text            `json:"team"`
	Position Text            `json:"position"`
	Year     Text            `json:"year"`
	Height   Text            `json:"height"`
	Weight   Text            `json:"weight"`
	Hometown Text            `json:"hometown"`
	Nation   Text            `json:"nationality"`
	PhotoURL Text            `json:"photo_url"`
	Stats    map[string]Text `json:"stats"`
	DataMap  CollegeDataMap  `json:"dataMap"`
}

type CollegeDataMap struct {
	Hometown Text `json:"hometown"`
	Height   Text `json:"height"`
	Weight   Text `json:"weight"`
}

func (CollegeRecord) Schema() Schema { return SchemaCollege }

type HighSchoolRecord struct {
	PlayerID   Text `json:"playerId"`
	ID         Text `json:"id"`
	Name       Text `json:"name"`
	Club       Text `json:"club"`
	State      Text `json:"state"`
	Position   Text `json:"position"`
	GradYear   Text `json:"grad_year"`
	Commitment Text `json:"commitment"`
	PictureURL Text `json:"picture_url"`
	Height     Text `json:"height"`
	Weight     Text `json:"weight"`
	Hometown   Text `json:"hometown"`
}

func (HighSchoolRecord) Schema() Schema { return SchemaHighSchool }

// Decode parses one raw record according to schema.
func Decode(schema Schema, raw []byte) (Record, error) {
	switch schema {
	case SchemaPro:
		var r ProRecord
		if err := sonic.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode pro record: %w", err)
		}
		return r, nil
	case SchemaCollege:
		var r CollegeRecord
		if err := sonic.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode college record: %w", err)
		}
		return r, nil
	case SchemaHighSchool:
		var r HighSchoolRecord
		if err := sonic.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode highschool record: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown schema %q", schema)
	}
}

// Text accepts a JSON string, number or boolean. null and absent fields
// decode to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}
	*t = Text(data)
	return nil
}

func (t Text) String() string { return strings.TrimSpace(string(t)) }

// Number accepts a JSON number or a numeric string. Anything unparsable
// decodes to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		*n = 0
		return nil
	}
	*n = Number(ParseNumber(t.String()))
	return nil
}

func (n Number) Int() int { return int(n) }

// maxStat bounds a parsed count so it always fits an int.
const maxStat = math.MaxInt32

// ParseNumber reads a non-negative count such as "12", "12.0" or "1,234".
// Anything else, including NaN, infinities, hex floats, negatives and values
// above maxStat, yields zero.
func ParseNumber(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" || strings.ContainsAny(raw, "xXpP") {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > maxStat {
		return 0
	}
	return v
}
