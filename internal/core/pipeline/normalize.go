package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	punctRe      = regexp.MustCompile(`[^\pL\pN\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// amountRe matches a trailing money token: optional $, thousands commas,
	// optional decimals, negativity as leading '-', trailing '-', or parentheses.
	amountRe = regexp.MustCompile(`\(?\s*-?\$?\s*(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\s*\)?-?%?`)

	// accountCodeRe matches an explicit chart-of-accounts code token at the
	// start of a line, e.g. "4010" or "6100-200".
	accountCodeRe = regexp.MustCompile(`^\s*(\d{3,5}(?:[-.]\d{1,4})?)\b`)
)

// NormalizeName lowercases, strips punctuation and collapses whitespace so
// that "Base Rentals - Retail" and "base rentals retail" compare equal.
func NormalizeName(s string) string {
	s = strings.ToLower(s)
	s = punctRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TokenSort returns the name's tokens in sorted order joined by single spaces.
// Comparing token-sorted forms makes similarity insensitive to word order.
func TokenSort(normalized string) string {
	if normalized == "" {
		return ""
	}
	tokens := strings.Fields(normalized)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ParseAmount parses one money token. It accepts "$1,234.56", "(500)" and
// "500-" (both negative), and "1234". The second return is false when the
// token is not a number.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// SplitLabelAmounts separates a raw line's text into its label and any
// trailing amount tokens (in reading order). Lines with tabular column values
// should prefer those; this handles free-text rows like
// "Base Rentals - Retail  30,000".
func SplitLabelAmounts(text string) (label string, amounts []decimal.Decimal) {
	label = text
	for {
		locs := amountRe.FindAllStringIndex(label, -1)
		if len(locs) == 0 {
			break
		}
		// Only strip tokens that sit at the end of the remaining text.
		loc := locs[len(locs)-1]
		if strings.TrimSpace(label[loc[1]:]) != "" {
			break
		}
		token := label[loc[0]:loc[1]]
		d, ok := ParseAmount(token)
		if !ok {
			break
		}
		amounts = append([]decimal.Decimal{d}, amounts...)
		label = strings.TrimSpace(label[:loc[0]])
	}
	return strings.TrimSpace(label), amounts
}

// ExtractAccountCode returns an explicit account code token from the start of
// the line text, if present.
func ExtractAccountCode(text string) (string, bool) {
	m := accountCodeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LineAmounts resolves the primary and secondary amount for a raw line,
// preferring tabular column values over trailing text tokens. The primary
// amount is the first numeric column (current period); a second numeric
// column (e.g. year-to-date) becomes the secondary amount.
func LineAmounts(columnValues []string, text string) (primary decimal.Decimal, secondary *decimal.Decimal, ok bool) {
	var found []decimal.Decimal
	if len(columnValues) > 0 {
		for _, cv := range columnValues {
			if d, isNum := ParseAmount(cv); isNum {
				found = append(found, d)
			}
		}
	}
	if len(found) == 0 {
		_, found = SplitLabelAmounts(text)
	}
	if len(found) == 0 {
		return decimal.Zero, nil, false
	}
	primary = found[0]
	if len(found) > 1 {
		s := found[1]
		secondary = &s
	}
	return primary, secondary, true
}

// LineLabel resolves the textual label of a raw line, preferring the first
// non-numeric column value for tabular lines.
func LineLabel(columnValues []string, text string) string {
	if len(columnValues) > 0 {
		for _, cv := range columnValues {
			if _, isNum := ParseAmount(cv); !isNum && strings.TrimSpace(cv) != "" {
				return strings.TrimSpace(cv)
			}
		}
	}
	label, _ := SplitLabelAmounts(text)
	return label
}
