package claim

import "strings"

// Updates is a partial change to a claimed profile. Nil fields are left
// untouched. Ownership fields and the email are not editable.
type Updates struct {
	Name                     *string  `json:"name,omitempty"`
	Position                 *string  `json:"position,omitempty"`
	CurrentSchool            *string  `json:"current_school,omitempty"`
	DivisionTransferringFrom *string  `json:"division_transferring_from,omitempty"`
	Nationality              *string  `json:"nationality,omitempty"`
	YearOfBirth              *string  `json:"year_of_birth,omitempty"`
	Height                   *string  `json:"height,omitempty"`
	Weight                   *string  `json:"weight,omitempty"`
	Hometown                 *string  `json:"hometown,omitempty"`
	League                   *string  `json:"league,omitempty"`
	PhotoURL                 *string  `json:"photo_url,omitempty"`
	GPA                      *float64 `json:"gpa,omitempty"`
	CreditHoursTaken         *string  `json:"credit_hours_taken,omitempty"`
	Finances                 *string  `json:"finances,omitempty"`
	Available                *bool    `json:"available,omitempty"`
	YearsOfEligibilityLeft   *string  `json:"years_of_eligibility_left,omitempty"`
	IndividualAwards         *string  `json:"individual_awards,omitempty"`
	CollegeAccolades         *string  `json:"college_accolades,omitempty"`
	Highlights               *string  `json:"highlights,omitempty"`
	FullGameLink             *string  `json:"full_game_link,omitempty"`
	WhyTransferring          *string  `json:"why_player_is_transferring,omitempty"`
}

type textUpdate struct {
	column string
	value  *string
	target *string
}

func (u *Updates) text(p *Profile) []textUpdate {
	return []textUpdate{
		{"name", u.Name, &p.Name},
		{"position", u.Position, &p.Position},
		{"current_school", u.CurrentSchool, &p.CurrentSchool},
		{"division_transferring_from", u.DivisionTransferringFrom, &p.DivisionTransferringFrom},
		{"nationality", u.Nationality, &p.Nationality},
		{"year_of_birth", u.YearOfBirth, &p.YearOfBirth},
		{"height", u.Height, &p.Height},
		{"weight", u.Weight, &p.Weight},
		{"hometown", u.Hometown, &p.Hometown},
		{"league", u.League, &p.League},
		{"photo_url", u.PhotoURL, &p.PhotoURL},
		{"credit_hours_taken", u.CreditHoursTaken, &p.CreditHoursTaken},
		{"finances", u.Finances, &p.Finances},
		{"years_of_eligibility_left", u.YearsOfEligibilityLeft, &p.YearsOfEligibilityLeft},
		{"individual_awards", u.IndividualAwards, &p.IndividualAwards},
		{"college_accolades", u.CollegeAccolades, &p.CollegeAccolades},
		{"highlights", u.Highlights, &p.Highlights},
		{"full_game_link", u.FullGameLink, &p.FullGameLink},
		{"why_player_is_transferring", u.WhyTransferring, &p.WhyTransferring},
	}
}

func (u Updates) IsEmpty() bool {
	return len(u.Columns()) == 0
}

// Columns maps each set field to its storage column.
func (u Updates) Columns() map[string]any {
	out := make(map[string]any)
	for _, f := range u.text(&Profile{}) {
		if f.value != nil {
			out[f.column] = strings.TrimSpace(*f.value)
		}
	}
	if u.GPA != nil {
		out["gpa"] = *u.GPA
	}
	if u.Available != nil {
		out["available"] = *u.Available
	}
	return out
}

// ApplyTo writes the set fields onto p.
func (u Updates) ApplyTo(p *Profile) {
	for _, f := range u.text(p) {
		if f.value != nil {
			*f.target = strings.TrimSpace(*f.value)
		}
	}
	if u.GPA != nil {
		v := *u.GPA
		p.GPA = &v
	}
	if u.Available != nil {
		p.Available = *u.Available
	}
}

// RequiredCleared reports required columns the update would blank out.
func (u Updates) RequiredCleared() []string {
	var out []string
	for _, f := range u.text(&Profile{}) {
		if f.value == nil || strings.TrimSpace(*f.value) != "" {
			continue
		}
		switch f.column {
		case "name", "position", "current_school", "division_transferring_from":
			out = append(out, f.column)
		}
	}
	return out
}

// ChangesFrom returns the fields of a resubmitted profile p that differ from
// current. Blank text fields and a nil GPA keep the stored value; the email
// is never carried over.
func (p Profile) ChangesFrom(current Profile) Updates {
	p = p.Trimmed()
	var u Updates
	set := func(slot **string, next, prev string) {
		if next != "" && next != prev {
			*slot = &next
		}
	}
	set(&u.Name, p.Name, current.Name)
	set(&u.Position, p.Position, current.Position)
	set(&u.CurrentSchool, p.CurrentSchool, current.CurrentSchool)
	set(&u.DivisionTransferringFrom, p.DivisionTransferringFrom, current.DivisionTransferringFrom)
	set(&u.Nationality, p.Nationality, current.Nationality)
	set(&u.YearOfBirth, p.YearOfBirth, current.YearOfBirth)
	set(&u.Height, p.Height, current.Height)
	set(&u.Weight, p.Weight, current.Weight)
	set(&u.Hometown, p.Hometown, current.Hometown)
	set(&u.League, p.League, current.League)
	set(&u.PhotoURL, p.PhotoURL, current.PhotoURL)
	set(&u.CreditHoursTaken, p.CreditHoursTaken, current.CreditHoursTaken)
	set(&u.Finances, p.Finances, current.Finances)
	set(&u.YearsOfEligibilityLeft, p.YearsOfEligibilityLeft, current.YearsOfEligibilityLeft)
	set(&u.IndividualAwards, p.IndividualAwards, current.IndividualAwards)
	set(&u.CollegeAccolades, p.CollegeAccolades, current.CollegeAccolades)
	set(&u.Highlights, p.Highlights, current.Highlights)
	set(&u.FullGameLink, p.FullGameLink, current.FullGameLink)
	set(&u.WhyTransferring, p.WhyTransferring, current.WhyTransferring)

	if p.GPA != nil && (current.GPA == nil || *current.GPA != *p.GPA) {
		gpa := *p.GPA
		u.GPA = &gpa
	}
	if p.Available != current.Available {
		available := p.Available
		u.Available = &available
	}
	return u
}
