package runs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunHashesInput(t *testing.T) {
	r := NewRun("req-1")
	r.HashInputs("jd text", "")
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "req-1", r.RequestID)
	assert.Equal(t, SourceText, r.InputSource)
	assert.Len(t, r.JDHash, 64)
	assert.Empty(t, r.ResumeHash)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Nil(t, r.OverallScore)
}

func TestRunScore(t *testing.T) {
	r := NewRun("")
	r.Score(72, "Good")
	require.NotNil(t, r.OverallScore)
	require.NotNil(t, r.ScoreLabel)
	assert.Equal(t, 72, *r.OverallScore)
	assert.Equal(t, "Good", *r.ScoreLabel)
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, DefaultListLimit},
		{5, 5},
		{MaxListLimit, MaxListLimit},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, tc := range cases {
		got, err := ClampLimit(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "limit %d", tc.in)
	}
	_, err := ClampLimit(-1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
