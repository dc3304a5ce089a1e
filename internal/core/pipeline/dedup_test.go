package pipeline_test

import (
	"testing"

	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchedLine(code, name string, amount int64, position int) domain.MatchedLine {
	c := code
	l := domain.MatchedLine{
		ClassifiedLine: domain.ClassifiedLine{
			RawLine: domain.RawLine{Position: position},
		},
		AccountName: name,
		Amount:      decimal.NewFromInt(amount),
	}
	if code != "" {
		l.AccountCode = &c
	}
	return l
}

func TestParseDedupPolicy(t *testing.T) {
	p, err := pipeline.ParseDedupPolicy("")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DedupKeepFirst, p)

	p, err = pipeline.ParseDedupPolicy("merge_amounts")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DedupMergeAmounts, p)

	_, err = pipeline.ParseDedupPolicy("bogus")
	assert.Error(t, err)
}

func TestDeduplicate_KeepFirst(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("6110", "Repairs and Maintenance", 100, 0),
		matchedLine("6110", "Repairs and Maintenance", 250, 1),
		matchedLine("6200", "Utilities", 400, 2),
	}

	out, collisions := pipeline.Deduplicate(lines, pipeline.DedupKeepFirst)
	require.Len(t, out, 2)
	assert.Equal(t, "100", out[0].Amount.String())
	assert.True(t, out[0].NeedsReview)
	assert.False(t, out[1].NeedsReview)

	require.Len(t, collisions, 1)
	assert.Equal(t, "6110", collisions[0].AccountCode)
	assert.Equal(t, 2, collisions[0].Count)
}

func TestDeduplicate_KeepFirstSkipsZeroAmountShadow(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("4000", "Rental Income", 0, 0),
		matchedLine("4000", "Rental Income", 30000, 2),
	}

	out, collisions := pipeline.Deduplicate(lines, pipeline.DedupKeepFirst)
	require.Len(t, out, 1)
	assert.Equal(t, "30000", out[0].Amount.String())
	assert.True(t, out[0].NeedsReview)
	assert.Len(t, collisions, 1)
}

func TestDeduplicate_MergeAmounts(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("6110", "Repairs and Maintenance", 100, 0),
		matchedLine("6110", "Repairs and Maintenance", 250, 1),
	}

	out, collisions := pipeline.Deduplicate(lines, pipeline.DedupMergeAmounts)
	require.Len(t, out, 1)
	assert.Equal(t, "350", out[0].Amount.String())
	assert.True(t, out[0].NeedsReview)
	assert.Len(t, collisions, 1)
}

func TestDeduplicate_KeepAll(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("6110", "Repairs and Maintenance", 100, 0),
		matchedLine("6110", "Repairs and Maintenance", 250, 1),
	}

	out, collisions := pipeline.Deduplicate(lines, pipeline.DedupKeepAll)
	require.Len(t, out, 2)
	assert.True(t, out[0].NeedsReview)
	assert.True(t, out[1].NeedsReview)
	assert.Len(t, collisions, 1)
}

func TestDeduplicate_TotalAndDetailDoNotCollide(t *testing.T) {
	total := matchedLine("", "Base Rentals", 30000, 5)
	total.IsTotal = true
	detail := matchedLine("", "Base Rentals", 30000, 1)

	out, collisions := pipeline.Deduplicate([]domain.MatchedLine{detail, total}, pipeline.DedupKeepFirst)
	assert.Len(t, out, 2)
	assert.Empty(t, collisions)
}

func TestDeduplicate_NameNormalizationGroups(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("", "Repairs & Maintenance", 100, 0),
		matchedLine("", "repairs   maintenance", 250, 1),
	}

	out, collisions := pipeline.Deduplicate(lines, pipeline.DedupKeepFirst)
	assert.Len(t, out, 1)
	assert.Len(t, collisions, 1)
}

func TestVerifyUnique(t *testing.T) {
	lines := []domain.MatchedLine{
		matchedLine("6110", "Repairs", 100, 0),
		matchedLine("6110", "Repairs", 250, 1),
	}
	assert.NoError(t, pipeline.VerifyUnique(lines))

	// same key at the same position is a defect
	lines[1].Position = 0
	assert.Error(t, pipeline.VerifyUnique(lines))
}
