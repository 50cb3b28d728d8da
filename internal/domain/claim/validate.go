package claim

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field  string
	Reason string
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateProfile checks a trimmed profile. Fields are reported in
// declaration order: name, position, current_school,
// division_transferring_from, email.
func ValidateProfile(ctx context.Context, p Profile) ([]FieldError, error) {
	err := profileValidator.StructCtx(ctx, p)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		reason := "missing"
		if fe.Tag() != "required" {
			reason = "invalid " + fe.Tag()
		}
		out = append(out, FieldError{Field: fe.Field(), Reason: reason})
	}
	return out, nil
}
