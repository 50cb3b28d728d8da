package claim

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/roster"
)

func validProfile() Profile {
	return Profile{
		Name:                     "Jose Garcia",
		Position:                 "CB",
		CurrentSchool:            "Tyler JC",
		DivisionTransferringFrom: "D1",
		Email:                    "a@b.com",
	}
}

func TestValidateProfile_ReportsMissingInOrder(t *testing.T) {
	p := Profile{Position: "CB", Email: "  "}.Trimmed()

	fields, err := ValidateProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, f.Field)
	}
	want := []string{"name", "current_school", "division_transferring_from", "email"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestValidateProfile_BlankNameOnly(t *testing.T) {
	p := validProfile()
	p.Name = "   "

	fields, err := ValidateProfile(context.Background(), p.Trimmed())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(fields) != 1 || fields[0].Field != "name" || fields[0].Reason != "missing" {
		t.Fatalf("expected only name missing, got %+v", fields)
	}
}

func TestValidateProfile_InvalidEmail(t *testing.T) {
	p := validProfile()
	p.Email = "not-an-email"

	fields, err := ValidateProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(fields) != 1 || fields[0].Field != "email" || fields[0].Reason != "invalid email" {
		t.Fatalf("expected invalid email, got %+v", fields)
	}
}

func TestProfile_TrimmedNormalizesEmail(t *testing.T) {
	p := Profile{Name: "  Ana ", Email: " Ana@Example.COM "}.Trimmed()
	if p.Name != "Ana" || p.Email != "ana@example.com" {
		t.Fatalf("unexpected trim result: %+v", p)
	}
}

func TestUpdates_ColumnsAndApply(t *testing.T) {
	school := " Navarro College "
	gpa := 3.4
	available := true
	u := Updates{CurrentSchool: &school, GPA: &gpa, Available: &available}

	if u.IsEmpty() {
		t.Fatalf("expected non-empty updates")
	}
	cols := u.Columns()
	want := map[string]any{"current_school": "Navarro College", "gpa": 3.4, "available": true}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("got %v want %v", cols, want)
	}

	p := validProfile()
	u.ApplyTo(&p)
	if p.CurrentSchool != "Navarro College" || p.GPA == nil || *p.GPA != 3.4 || !p.Available {
		t.Fatalf("unexpected profile after apply: %+v", p)
	}
	if p.Name != "Jose Garcia" {
		t.Fatalf("unset fields must be untouched")
	}

	if !(Updates{}).IsEmpty() {
		t.Fatalf("zero updates must be empty")
	}
}

func TestUpdates_RequiredCleared(t *testing.T) {
	blank := " "
	height := ""
	u := Updates{Name: &blank, Height: &height}
	if got := u.RequiredCleared(); !reflect.DeepEqual(got, []string{"name"}) {
		t.Fatalf("unexpected cleared fields: %v", got)
	}
}

func TestProfile_ChangesFrom(t *testing.T) {
	gpa := 3.1
	current := validProfile()
	current.Height = "180cm"
	current.GPA = &gpa

	next := validProfile()
	next.CurrentSchool = " Navarro College "
	next.Email = "other@b.com"
	next.Height = ""
	next.Available = true

	cols := next.ChangesFrom(current).Columns()
	want := map[string]any{"current_school": "Navarro College", "available": true}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("got %v want %v", cols, want)
	}

	if !validProfile().ChangesFrom(validProfile()).IsEmpty() {
		t.Fatalf("identical resubmit must produce no updates")
	}
}

func TestClaimedProfile_Player(t *testing.T) {
	at := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	gpa := 3.25
	c := ClaimedProfile{
		ID:               "cp-1",
		OriginalPlayerID: " 90412 ",
		ClaimedByUserID:  "u1",
		ClaimedAt:        at,
		Profile:          validProfile(),
	}
	c.GPA = &gpa
	c.League = "NJCAA D1"

	p := c.Player()
	if p.IdentityKey != "90412" || !p.Claimed || p.Type != roster.TypeTransfer {
		t.Fatalf("unexpected identity/claim fields: %+v", p)
	}
	if p.Team != "Tyler JC" || p.League != "NJCAA D1" {
		t.Fatalf("unexpected team/league: %q %q", p.Team, p.League)
	}
	if p.Height != roster.NotAvailable || p.PhotoURL != roster.NotAvailable {
		t.Fatalf("empty profile fields must become sentinel: %+v", p)
	}
	if p.Claim == nil || p.Claim.ProfileID != "cp-1" || p.Claim.GPA != "3.25" || !p.Claim.ClaimedAt.Equal(at) {
		t.Fatalf("unexpected claim info: %+v", p.Claim)
	}
}
