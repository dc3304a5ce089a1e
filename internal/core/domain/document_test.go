package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentType_IsValid(t *testing.T) {
	for _, dt := range DocumentTypes() {
		assert.True(t, dt.IsValid(), string(dt))
	}
	assert.False(t, DocumentType("LEDGER").IsValid())
	assert.False(t, DocumentType("").IsValid())
}

func TestDocumentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusNeedsReview, true},
		{StatusCompleted, StatusProcessing, false},
		{StatusFailed, StatusProcessing, false},
		{StatusNeedsReview, StatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDocumentStatus_ResubmissionResetsAnyState(t *testing.T) {
	for _, from := range []DocumentStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusNeedsReview} {
		assert.True(t, from.CanTransitionTo(StatusPending), string(from))
	}
}

func TestDocumentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusNeedsReview.IsTerminal())
}
