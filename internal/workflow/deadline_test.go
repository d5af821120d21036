package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestProofDeadlineSkipsWeekends(t *testing.T) {
	friday := date(2026, time.January, 2)
	require.Equal(t, time.Friday, friday.Weekday())

	deadline := ProofDeadline(friday, 3)
	assert.Equal(t, date(2026, time.January, 7), deadline) // Wednesday
	assert.Equal(t, time.Wednesday, deadline.Weekday())
}

func TestProofDeadlineMidweek(t *testing.T) {
	monday := date(2026, time.January, 5)
	require.Equal(t, time.Monday, monday.Weekday())

	deadline := ProofDeadline(monday, 3)
	assert.Equal(t, date(2026, time.January, 8), deadline) // Thursday
}

func TestProofDeadlineWeekendStart(t *testing.T) {
	saturday := date(2026, time.January, 3)
	require.Equal(t, time.Saturday, saturday.Weekday())

	// Counting starts at the next weekday
	deadline := ProofDeadline(saturday, 3)
	assert.Equal(t, date(2026, time.January, 7), deadline)
}

func TestProofDeadlineAlwaysLandsOnWeekday(t *testing.T) {
	start := date(2026, time.March, 1)
	for i := 0; i < 14; i++ {
		d := ProofDeadline(start.AddDate(0, 0, i), 3)
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}
