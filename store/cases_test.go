package store

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestCaseStore(t *testing.T) *CaseStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	s, err := NewCaseStore(db, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestCaseStore_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	_, err = NewCaseStore(db, zap.NewNop())
	require.NoError(t, err)

	// A second store over the same database must not duplicate the seed.
	s, err := NewCaseStore(db, zap.NewNop())
	require.NoError(t, err)

	pending, err := s.PendingCases(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, len(SampleCases()))
}

func TestCaseStore_PendingCaseByNameIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestCaseStore(t)

	c, err := s.PendingCaseByName(ctx, "john doe")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.UserName)
	assert.Equal(t, "4242", c.CardEnding)
	assert.Equal(t, StatusPendingReview, c.Status)
}

func TestCaseStore_PendingCaseByNameUnknown(t *testing.T) {
	ctx := context.Background()
	s := newTestCaseStore(t)

	_, err := s.PendingCaseByName(ctx, "Nobody Here")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCaseStore_ResolvedCaseNoLongerPending(t *testing.T) {
	ctx := context.Background()
	s := newTestCaseStore(t)

	c, err := s.PendingCaseByName(ctx, "Priya Sharma")
	require.NoError(t, err)

	err = s.UpdateStatus(ctx, c.ID, StatusConfirmedSafe, "Customer confirmed the charge", true)
	require.NoError(t, err)

	_, err = s.PendingCaseByName(ctx, "Priya Sharma")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	updated, err := s.CaseByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmedSafe, updated.Status)
	assert.Equal(t, "Customer confirmed the charge", updated.Outcome)
	assert.True(t, updated.Verified)
	assert.True(t, updated.UpdatedAt.After(c.CreatedAt) || updated.UpdatedAt.Equal(c.CreatedAt))
}

func TestCaseStore_UpdateStatusUnknownID(t *testing.T) {
	ctx := context.Background()
	s := newTestCaseStore(t)

	err := s.UpdateStatus(ctx, 9999, StatusConfirmedFraud, "whatever", true)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCaseStore_AllCasesCoversEveryStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestCaseStore(t)

	c, err := s.PendingCaseByName(ctx, "Raj Kumar")
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, c.ID, StatusVerificationFailed, "Identity verification failed", false))

	all, err := s.AllCases(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(SampleCases()))

	pending, err := s.PendingCases(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, len(SampleCases())-1)
}
