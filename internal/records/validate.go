package records

import (
	"fmt"
	"strings"
	"time"
)

// now is a seam for tests.
var now = func() int64 { return time.Now().UnixMilli() }

// Input carries raw, untrimmed form fields for Build.
type Input struct {
	ServiceName      string
	Username         string
	Password         string
	Notes            string
	SiteURL          string
	InsuranceCompany string
	InsuranceNumber  string
}

// ValidationError reports which required fields were blank for a kind.
// Or is set for KindExtra, whose rule is "at least one of Missing".
type ValidationError struct {
	Kind    Kind
	Missing []string
	Or      bool
}

func (e *ValidationError) Error() string {
	if e.Or {
		return fmt.Sprintf("%s record requires at least one of: %s", e.Kind, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s record is missing required fields: %s", e.Kind, strings.Join(e.Missing, ", "))
}

// Build validates raw form input for the given kind and produces a Record
// ready for persistence. All string inputs are trimmed first. On success the
// record carries UpdatedAt = current time; when existing is nil this is a
// creation, so CreatedAt is set too and ID is left for the store to assign.
// When existing is non-nil, its ID, OwnerID and CreatedAt are preserved.
//
// Build performs no I/O; persisting the result is the caller's job.
func Build(kind Kind, in Input, existing *Record) (*Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}

	r := &Record{
		Kind:        kind,
		ServiceName: strings.TrimSpace(in.ServiceName),
		Username:    strings.TrimSpace(in.Username),
		Password:    strings.TrimSpace(in.Password),
		Notes:       strings.TrimSpace(in.Notes),
	}

	switch kind {
	case KindAccount:
		r.SiteURL = strings.TrimSpace(in.SiteURL)
	case KindInsurance:
		r.InsuranceCompany = strings.TrimSpace(in.InsuranceCompany)
		r.InsuranceNumber = strings.TrimSpace(in.InsuranceNumber)
	case KindExtra:
		// Extras are a name/contents pair only.
		r.Username = ""
		r.Password = ""
	case KindWifi:
		r.Username = ""
	}

	if err := checkRequired(kind, r); err != nil {
		return nil, err
	}

	ts := now()
	r.UpdatedAt = ts
	if existing == nil {
		r.CreatedAt = ts
	} else {
		r.ID = existing.ID
		r.OwnerID = existing.OwnerID
		r.CreatedAt = existing.CreatedAt
	}

	return r, nil
}

func checkRequired(kind Kind, r *Record) error {
	required := RequiredFields(kind)

	if kind == KindExtra {
		for _, f := range required {
			if fieldValue(r, f) != "" {
				return nil
			}
		}
		return &ValidationError{Kind: kind, Missing: required, Or: true}
	}

	var missing []string
	for _, f := range required {
		if fieldValue(r, f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Kind: kind, Missing: missing}
	}
	return nil
}

func fieldValue(r *Record, name string) string {
	switch name {
	case "serviceName":
		return r.ServiceName
	case "username":
		return r.Username
	case "password":
		return r.Password
	case "notes":
		return r.Notes
	}
	return ""
}

// Valid reports whether the input satisfies the kind's required-field rule.
// It is a convenience wrapper over the same checks Build applies.
func Valid(kind Kind, in Input) bool {
	_, err := Build(kind, in, nil)
	return err == nil
}
