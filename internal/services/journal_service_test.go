package services

import (
	"testing"

	"readly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournalFixture() (*JournalServiceImpl, *fakeJournalRepo) {
	setupTestConfig()
	journals := newFakeJournalRepo()
	svc := &JournalServiceImpl{
		journalRepo: journals,
		verifier:    testVerifier(),
		now:         fixedClock(testNow),
	}
	return svc, journals
}

func TestJournalGetStatus_LazyTrialStart(t *testing.T) {
	svc, journals := newJournalFixture()

	status, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)

	// Окно стартует с первого касания фичи
	assert.True(t, status.HasAccess)
	assert.Equal(t, testNow.AddDate(0, 0, 14), status.FreeTrialEndsAt)
	assert.Equal(t, 14, status.DaysRemaining)
	assert.Nil(t, status.AccessUntil)
	assert.Len(t, journals.rows, 1)
}

func TestJournalGetStatus_TrialStartIsStable(t *testing.T) {
	svc, _ := newJournalFixture()

	first, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)

	// Второе обращение позже не сдвигает FreeTrialEndsAt
	svc.now = fixedClock(testNow.AddDate(0, 0, 3))
	second, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.FreeTrialEndsAt, second.FreeTrialEndsAt)
	assert.Equal(t, 11, second.DaysRemaining)
}

func TestJournalExtend_DuringTrialStacksOnTrialEnd(t *testing.T) {
	svc, _ := newJournalFixture()

	_, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)

	status, err := svc.ExtendByAd(nil, "user-1", &models.AdRewardRequest{})
	require.NoError(t, err)

	// Продление поверх еще активного trial: 14 + 7 дней от now
	require.NotNil(t, status.AccessUntil)
	assert.Equal(t, testNow.AddDate(0, 0, 21), *status.AccessUntil)
	assert.Equal(t, 21, status.DaysRemaining)
}

func TestJournalExtend_AfterExpiryStartsFromNow(t *testing.T) {
	svc, _ := newJournalFixture()

	_, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)

	// Оба окна истекли
	later := testNow.AddDate(0, 0, 30)
	svc.now = fixedClock(later)

	before, err := svc.GetStatus(nil, "user-1")
	require.NoError(t, err)
	assert.False(t, before.HasAccess)

	status, err := svc.ExtendByAd(nil, "user-1", &models.AdRewardRequest{})
	require.NoError(t, err)

	assert.True(t, status.HasAccess)
	assert.Equal(t, later.AddDate(0, 0, 7), *status.AccessUntil)
}

func TestJournalExtend_RecordsRewardAction(t *testing.T) {
	svc, journals := newJournalFixture()

	_, err := svc.ExtendByAd(nil, "user-1", &models.AdRewardRequest{})
	require.NoError(t, err)

	require.Len(t, journals.actions, 1)
	assert.Equal(t, models.RewardAdJournal, journals.actions[0].Action)
}
