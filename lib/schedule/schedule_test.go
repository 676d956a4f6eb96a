package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidExpressions(t *testing.T) {
	cases := []string{
		"@hourly",
		"@daily",
		"@every 10s",
		"@every 1h30m",
		"*/10 * * * *",
		"*/10 * * * * *",
		"0 10 * * *",
	}
	for _, expr := range cases {
		_, err := Parse(expr)
		assert.NoErrorf(t, err, "expected %q to parse", expr)
	}
}

func TestParseRejectsInvalidExpressions(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not a schedule",
		"@every 0s",
		"@every -5s",
		"@every nonsense",
	}
	for _, expr := range cases {
		_, err := Parse(expr)
		assert.Errorf(t, err, "expected %q to be rejected", expr)
	}
}

func TestNextIsAlwaysAfterReference(t *testing.T) {
	s, err := Parse("*/10 * * * * *")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		next := s.Next(now)
		assert.True(t, next.After(now), "next(%v) = %v must be strictly after reference", now, next)
		now = next
	}
}

func TestEveryTenSecondsMatchesSixFieldEquivalent(t *testing.T) {
	every, err := Parse("@every 10s")
	require.NoError(t, err)

	explicit, err := Parse("*/10 * * * * *")
	require.NoError(t, err)

	ref := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	// "@every 10s" is expanded to "*/10 * * * * *", so both schedules
	// fire on the same 10-second boundaries.
	assert.Equal(t, explicit.Next(ref), every.Next(ref))
}

func TestStringPreservesOriginalExpression(t *testing.T) {
	s, err := Parse("  @hourly  ")
	require.NoError(t, err)
	assert.Equal(t, "@hourly", s.String())
}
