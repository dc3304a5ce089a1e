package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoTable_CachesScores(t *testing.T) {
	memo := NewMemoTable()
	a := memo.similarity("base rentals retail", "base rentals office")
	b := memo.similarity("base rentals retail", "base rentals office")
	assert.Equal(t, a, b)
	assert.Len(t, memo.scores, 1)
}
