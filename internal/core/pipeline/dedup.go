package pipeline

import (
	"fmt"

	"github.com/finparse/statement-pipeline/internal/core/domain"
)

// DedupPolicy selects how colliding duplicate lines are resolved. The merge
// policy materially affects reported totals, so it is configuration, not a
// hardcoded choice; keep_first is the safe default. Collisions are flagged
// for review under every policy.
type DedupPolicy string

const (
	DedupKeepFirst    DedupPolicy = "keep_first"
	DedupMergeAmounts DedupPolicy = "merge_amounts"
	DedupKeepAll      DedupPolicy = "keep_all"
)

// ParseDedupPolicy validates a configured policy string.
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch DedupPolicy(s) {
	case DedupKeepFirst, DedupMergeAmounts, DedupKeepAll:
		return DedupPolicy(s), nil
	case "":
		return DedupKeepFirst, nil
	}
	return "", fmt.Errorf("unknown dedup policy %q", s)
}

// Collision records one resolved duplicate group for the run log.
type Collision struct {
	AccountCode string
	AccountName string
	Count       int
	Policy      DedupPolicy
}

// Deduplicate collapses lines that are re-derived duplicates of the same
// logical entry. Lines are grouped by (account code, normalized name, total
// flag); groups with more than one member resolve per policy. Under
// keep_first the survivor is the earliest member carrying a non-zero amount,
// falling back to the first member when none does. After this
// stage the persistence idempotency key (document, account code, account
// name, position) cannot collide: survivors keep their distinct document
// positions, and under keep_first/merge_amounts each group keeps exactly one
// member.
func Deduplicate(lines []domain.MatchedLine, policy DedupPolicy) ([]domain.MatchedLine, []Collision) {
	type group struct {
		firstIdx int
		members  []int
	}
	key := func(l domain.MatchedLine) string {
		code := ""
		if l.AccountCode != nil {
			code = *l.AccountCode
		}
		kind := "detail"
		if l.IsTotal {
			kind = "total"
		}
		return code + "\x00" + NormalizeName(l.AccountName) + "\x00" + kind
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(lines))
	for i, l := range lines {
		k := key(l)
		g, ok := groups[k]
		if !ok {
			g = &group{firstIdx: i}
			groups[k] = g
			order = append(order, k)
		}
		g.members = append(g.members, i)
	}

	out := make([]domain.MatchedLine, 0, len(lines))
	var collisions []Collision
	for _, k := range order {
		g := groups[k]
		if len(g.members) == 1 {
			out = append(out, lines[g.firstIdx])
			continue
		}

		first := lines[g.firstIdx]
		code := ""
		if first.AccountCode != nil {
			code = *first.AccountCode
		}
		collisions = append(collisions, Collision{
			AccountCode: code,
			AccountName: first.AccountName,
			Count:       len(g.members),
			Policy:      policy,
		})

		switch policy {
		case DedupMergeAmounts:
			merged := first
			for _, idx := range g.members[1:] {
				merged.Amount = merged.Amount.Add(lines[idx].Amount)
			}
			merged.NeedsReview = true
			out = append(out, merged)
		case DedupKeepAll:
			for _, idx := range g.members {
				kept := lines[idx]
				kept.NeedsReview = true
				out = append(out, kept)
			}
		default: // keep_first
			// A zero-amount duplicate must not shadow a member that carries
			// a real amount.
			keep := first
			if keep.Amount.IsZero() {
				for _, idx := range g.members[1:] {
					if !lines[idx].Amount.IsZero() {
						keep = lines[idx]
						break
					}
				}
			}
			keep.NeedsReview = true
			out = append(out, keep)
		}
	}
	return out, collisions
}

// VerifyUnique re-checks the idempotency key after deduplication. A residual
// collision here is a defect in this stage, not a business condition; callers
// treat it as fatal for the document.
func VerifyUnique(lines []domain.MatchedLine) error {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		code := ""
		if l.AccountCode != nil {
			code = *l.AccountCode
		}
		k := fmt.Sprintf("%s\x00%s\x00%d", code, NormalizeName(l.AccountName), l.Position)
		if seen[k] {
			return fmt.Errorf("duplicate key after deduplication: account=%q name=%q position=%d", code, l.AccountName, l.Position)
		}
		seen[k] = true
	}
	return nil
}
