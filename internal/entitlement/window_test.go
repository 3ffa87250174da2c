package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtendDays_FromNowWhenExpired(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-48 * time.Hour)

	got := ExtendDays(now, 1, &expired)
	assert.Equal(t, now.AddDate(0, 0, 1), got)
}

func TestExtendDays_StacksAdditively(t *testing.T) {
	// Последовательные гранты складываются: max(now, expiry) + d,
	// никогда не now + d
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var expiry *time.Time
	for i := 0; i < 3; i++ {
		next := ExtendDays(now, 1, expiry)
		expiry = &next
	}

	assert.Equal(t, now.AddDate(0, 0, 3), *expiry)
}

func TestExtendDays_PicksLatestCandidate(t *testing.T) {
	// Продление журнала внутри бесплатного trial: база - конец trial,
	// а не now, продление не сгорает
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	trialEnd := now.AddDate(0, 0, 10)
	accessUntil := now.AddDate(0, 0, 2)

	got := ExtendDays(now, 7, &accessUntil, &trialEnd)
	assert.Equal(t, trialEnd.AddDate(0, 0, 7), got)
}

func TestExtendDays_NilCandidates(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	got := ExtendDays(now, 7, nil, nil)
	assert.Equal(t, now.AddDate(0, 0, 7), got)
}

func TestActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, Active(now, &future))
	assert.True(t, Active(now, &past, &future))
	assert.False(t, Active(now, &past))
	assert.False(t, Active(now, nil, nil))
	assert.False(t, Active(now))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	full := now.AddDate(0, 0, 3)
	assert.Equal(t, 3, DaysRemaining(now, &full))

	// Неполный день округляется вверх
	partial := now.Add(25 * time.Hour)
	assert.Equal(t, 2, DaysRemaining(now, &partial))

	past := now.Add(-time.Hour)
	assert.Equal(t, 0, DaysRemaining(now, &past))
	assert.Equal(t, 0, DaysRemaining(now, nil))
}

func TestDayBounds_ReferenceTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 02:00 UTC 10 марта = вечер 9 марта в Нью-Йорке: день считается
	// по референсной зоне, а не по UTC
	now := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	start, end := DayBounds(now, loc)

	assert.Equal(t, 9, start.In(loc).Day())
	assert.True(t, start.Before(now))
	assert.True(t, end.After(now))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
