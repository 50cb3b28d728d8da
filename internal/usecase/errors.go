package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrPartialMigration      = errors.New("pending claim migration incomplete")
)

// ValidationError lists the claim fields that were missing or malformed.
type ValidationError struct {
	Fields []claim.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing or invalid fields: %s", ErrInvalidInput, strings.Join(e.FieldNames(), ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FieldNames returns the rejected field names in report order.
func (e *ValidationError) FieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Field)
	}
	return out
}

// MigrationStep names one write of the pending claim migration.
type MigrationStep string

const (
	StepLookupProfile     MigrationStep = "lookup_profile"
	StepCreateProfile     MigrationStep = "create_profile"
	StepUpsertUserProfile MigrationStep = "upsert_user_profile"
	StepDeletePending     MigrationStep = "delete_pending"
)

// PartialMigrationError reports the claim and step where a migration stopped.
// Rerunning the migration resumes from that point.
type PartialMigrationError struct {
	PendingClaimID   string
	OriginalPlayerID string
	Step             MigrationStep
	Migrated         int
	Err              error
}

func (e *PartialMigrationError) Error() string {
	return fmt.Sprintf("%s: claim=%s player=%s step=%s migrated=%d: %v",
		ErrPartialMigration, e.PendingClaimID, e.OriginalPlayerID, e.Step, e.Migrated, e.Err)
}

func (e *PartialMigrationError) Unwrap() []error {
	return []error{ErrPartialMigration, e.Err}
}
