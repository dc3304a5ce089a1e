package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// headerPageLimit bounds how many leading pages are scanned for metadata.
const headerPageLimit = 2

var (
	periodEndedRe = regexp.MustCompile(`(?i)for\s+the\s+(?:(?:twelve|three|six|nine|one)\s+)?(?:month|months|quarter|year|period)s?\s+(?:end(?:ed|ing)|of)\s+(.+)`)
	asOfRe        = regexp.MustCompile(`(?i)^\s*as\s+of\s+(.+)`)
	periodRangeRe = regexp.MustCompile(`(?i)(?:period|from)\s*:?\s+(.+?)\s+(?:to|through|-)\s+(.+)`)
	reportDateRe  = regexp.MustCompile(`(?i)(?:report|run|print(?:ed)?)\s+date\s*:?\s*(.+)`)
	entityIDRe    = regexp.MustCompile(`(?i)(?:property|entity|project|company)\s*(?:id|code|no\.?|number)?\s*:\s*(\S.*)`)
	cashBasisRe   = regexp.MustCompile(`(?i)\bcash\s+basis\b`)
	accrualRe     = regexp.MustCompile(`(?i)\baccrual\s+basis\b`)

	// statementTitleRe keeps report titles from being mistaken for the entity name.
	statementTitleRe = regexp.MustCompile(`(?i)balance\s+sheet|income\s+statement|statement\s+of|cash\s+flow|rent\s+roll|operating\s+statement|profit\s+(?:and|&)\s+loss`)
)

// dateLayouts are tried in order when parsing header dates.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"January 2006",
	"Jan-06",
	"01/2006",
}

func parseHeaderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.Trim(s, ".,"))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// looksLikeHeaderMetadata reports whether a line is report preamble that the
// header extractor consumes: statement titles, period and report dates,
// entity identifiers, and basis declarations. Such lines never become line
// items even when they contain number tokens (a year in a date line is not
// an amount).
func looksLikeHeaderMetadata(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return statementTitleRe.MatchString(text) ||
		periodEndedRe.MatchString(text) ||
		asOfRe.MatchString(text) ||
		periodRangeRe.MatchString(text) ||
		reportDateRe.MatchString(text) ||
		entityIDRe.MatchString(text) ||
		cashBasisRe.MatchString(text) ||
		accrualRe.MatchString(text)
}

// HeaderExtractor pulls document metadata from the leading pages of the line
// stream. Every field degrades to its zero value when not found; header
// extraction is never fatal.
type HeaderExtractor struct{}

// NewHeaderExtractor creates a HeaderExtractor.
func NewHeaderExtractor() *HeaderExtractor {
	return &HeaderExtractor{}
}

// Extract scans lines on the first pages and fills a DocumentHeader. The
// header keeps the caller-assigned document ID and type; status handling is
// the runner's concern, not the extractor's.
func (e *HeaderExtractor) Extract(documentID string, docType domain.DocumentType, lines []domain.RawLine) domain.DocumentHeader {
	header := domain.DocumentHeader{
		DocumentID:      documentID,
		DocumentType:    docType,
		AccountingBasis: domain.BasisUnknown,
	}

	for _, line := range lines {
		if line.PageNumber > headerPageLimit {
			break
		}
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if m := entityIDRe.FindStringSubmatch(text); m != nil {
			header.EntityID = strings.TrimSpace(m[1])
			continue
		}
		if cashBasisRe.MatchString(text) {
			header.AccountingBasis = domain.BasisCash
		} else if accrualRe.MatchString(text) {
			header.AccountingBasis = domain.BasisAccrual
		}
		if m := reportDateRe.FindStringSubmatch(text); m != nil {
			if t, ok := parseHeaderDate(m[1]); ok {
				header.ReportDate = &t
			}
			continue
		}
		if m := periodRangeRe.FindStringSubmatch(text); m != nil {
			start, okStart := parseHeaderDate(m[1])
			end, okEnd := parseHeaderDate(m[2])
			if okStart && okEnd {
				header.PeriodStart = &start
				header.PeriodEnd = &end
				continue
			}
		}
		if m := periodEndedRe.FindStringSubmatch(text); m != nil {
			if t, ok := parseHeaderDate(m[1]); ok {
				header.PeriodEnd = &t
				continue
			}
		}
		if m := asOfRe.FindStringSubmatch(text); m != nil {
			if t, ok := parseHeaderDate(m[1]); ok {
				header.PeriodEnd = &t
				continue
			}
		}

		// The first plain text line on page one is taken as the entity name.
		if header.EntityName == "" && line.PageNumber <= 1 && !statementTitleRe.MatchString(text) {
			if _, amounts := SplitLabelAmounts(text); len(amounts) == 0 {
				header.EntityName = text
			}
		}
	}

	if header.EntityID == "" {
		header.EntityID = header.EntityName
	}
	return header
}
