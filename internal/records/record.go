// Package records defines the five record shapes a vault can hold and the
// validation rules that gate every write. All record-producing paths (forms,
// spreadsheet import) go through Build so the per-kind required-field rules
// live in exactly one place.
package records

// Kind discriminates the record shapes. The set is closed: code switching on
// Kind should handle every constant below and treat anything else as corrupt.
type Kind string

const (
	KindAccount   Kind = "account"
	KindBank      Kind = "bank"
	KindInsurance Kind = "insurance"
	KindExtra     Kind = "extra"
	KindWifi      Kind = "wifi"
)

// Kinds lists all kinds in their canonical order (tab order in the UI,
// sheet order in exports).
var Kinds = []Kind{KindAccount, KindBank, KindInsurance, KindExtra, KindWifi}

// Valid reports whether k is one of the five known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAccount, KindBank, KindInsurance, KindExtra, KindWifi:
		return true
	}
	return false
}

// Record is a single vault entry. Which fields are meaningful depends on
// Kind; Build zeroes the ones that are not.
//
// For banks, ServiceName holds the bank name and Username the account
// number. For wifi, ServiceName holds the SSID and Username is unused.
type Record struct {
	ID      string `json:"id,omitempty"`
	OwnerID string `json:"ownerId"`
	Kind    Kind   `json:"kind"`

	ServiceName      string `json:"serviceName,omitempty"`
	Username         string `json:"username,omitempty"`
	Password         string `json:"password,omitempty"`
	Notes            string `json:"notes,omitempty"`
	SiteURL          string `json:"siteUrl,omitempty"`
	InsuranceCompany string `json:"insuranceCompany,omitempty"`
	InsuranceNumber  string `json:"insuranceNumber,omitempty"`

	// Unix epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// RequiredFields returns the field names that must be non-blank for the kind.
// For KindExtra the rule is an OR over the returned set (at least one),
// for every other kind it is an AND (all of them).
func RequiredFields(kind Kind) []string {
	switch kind {
	case KindAccount, KindBank:
		return []string{"serviceName", "username", "password"}
	case KindInsurance:
		return []string{"serviceName", "username"}
	case KindExtra:
		return []string{"serviceName", "notes"}
	case KindWifi:
		return []string{"serviceName", "password"}
	}
	return nil
}
