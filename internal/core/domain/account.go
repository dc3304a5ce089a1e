package domain

// ExpectedSign is the sign an amount posted against an account normally carries.
type ExpectedSign string

const (
	SignPositive ExpectedSign = "POSITIVE"
	SignNegative ExpectedSign = "NEGATIVE"
	SignEither   ExpectedSign = "EITHER"
)

// Matches reports whether an observed amount sign agrees with the expectation.
// Zero amounts agree with everything.
func (s ExpectedSign) Matches(negative bool) bool {
	switch s {
	case SignPositive:
		return !negative
	case SignNegative:
		return negative
	}
	return true
}

// ChartOfAccountsEntry is one canonical account definition. The catalogue is
// reference data: loaded once per run and read concurrently without locking.
type ChartOfAccountsEntry struct {
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	NormalizedName string         `json:"normalizedName"` // precomputed at load time
	Category       string         `json:"category"`
	Subcategory    string         `json:"subcategory"`
	ParentCode     *string        `json:"parentCode"`
	DocumentTypes  []DocumentType `json:"documentTypes"` // empty means valid for all types
	ExpectedSign   ExpectedSign   `json:"expectedSign"`
	IsSummary      bool           `json:"isSummary"` // the total/summary row for its category
	IsActive       bool           `json:"isActive"`
	AuditFields
}

// AppliesTo reports whether the entry is valid for the given document type.
func (e ChartOfAccountsEntry) AppliesTo(t DocumentType) bool {
	if len(e.DocumentTypes) == 0 {
		return true
	}
	for _, dt := range e.DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}
