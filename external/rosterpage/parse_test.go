package rosterpage

import (
	"strings"
	"testing"
)

func TestParse_PlayerCards(t *testing.T) {
	page := `<html><body>
	<div class="player-card">
		<img src="/images/ana.jpg">
		<a class="player-name" href="/roster/ana">Ana  Ruiz</a>
		<span class="player-position">MF</span>
		<span class="player-height">5-7</span>
		<span class="player-weight">130</span>
		<span class="player-hometown">Madrid, Spain</span>
	</div>
	<div class="player-card">
		<span class="name">Bea Cruz</span>
		<span class="pos">D</span>
	</div>
	<div class="player-card"><img src="/images/placeholder.jpg"></div>
	</body></html>`

	details, err := Parse(strings.NewReader(page), "Iowa Western", "https://iwcc.example.edu/sports/wsoc/roster")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected nameless card to be dropped, got %d rows", len(details))
	}

	ana := details[0]
	if ana.Name != "Ana Ruiz" || ana.Team != "Iowa Western" {
		t.Fatalf("unexpected identity: %+v", ana)
	}
	if ana.PhotoURL != "https://iwcc.example.edu/images/ana.jpg" {
		t.Fatalf("expected absolute photo url, got %q", ana.PhotoURL)
	}
	if ana.Position != "MF" || ana.Height != "5-7" || ana.Weight != "130" || ana.Hometown != "Madrid, Spain" {
		t.Fatalf("unexpected detail fields: %+v", ana)
	}

	bea := details[1]
	if bea.Name != "Bea Cruz" || bea.Position != "D" || bea.Height != "" || bea.PhotoURL != "" {
		t.Fatalf("unexpected sparse row: %+v", bea)
	}
}

func TestParse_WeightIsNotHeight(t *testing.T) {
	page := `<div class="roster-row">
		<span class="name">Cam Doe</span>
		<span class="weight">170</span>
		<span class="ht">5-11</span>
	</div>`

	details, err := Parse(strings.NewReader(page), "Tyler", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 row, got %d", len(details))
	}
	if details[0].Height != "5-11" || details[0].Weight != "170" {
		t.Fatalf("height/weight crossed: %+v", details[0])
	}
}

func TestParse_TableFallback(t *testing.T) {
	page := `<table>
		<tr><th>Name</th><th>Pos</th></tr>
		<tr><td class="roster_name"><a href="/p/1">Jose Garcia</a></td><td class="roster_pos">F</td><td class="hometown">El Paso, TX</td></tr>
		<tr><td>Luis Perez</td><td>GK</td></tr>
	</table>`

	details, err := Parse(strings.NewReader(page), "Tormenta FC", "https://example.com/roster")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected header row to be skipped, got %d rows", len(details))
	}
	if details[0].Name != "Jose Garcia" || details[0].Position != "F" || details[0].Hometown != "El Paso, TX" {
		t.Fatalf("unexpected first row: %+v", details[0])
	}
	if details[1].Name != "Luis Perez" || details[1].Position != "" {
		t.Fatalf("unexpected second row: %+v", details[1])
	}
}

func TestParse_SelectorPriority(t *testing.T) {
	page := `<div class="athlete-card"><span class="name">Ignored Athlete</span></div>
	<div class="roster-player"><span class="name">Kept Player</span></div>`

	details, err := Parse(strings.NewReader(page), "Team", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(details) != 1 || details[0].Name != "Kept Player" {
		t.Fatalf("expected .roster-player to win, got %+v", details)
	}
}
