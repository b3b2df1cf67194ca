package scan

import (
	"testing"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []domain.DetectionCandidate {
	return []domain.DetectionCandidate{
		{Name: "Milk", Category: "Dairy", Confidence: 0.9, SuggestedLocation: domain.LocationFridge, EstimatedExpiry: 7},
		{Name: "Bread", Category: "Bakery", Confidence: 0.8, SuggestedLocation: domain.LocationPantry, EstimatedExpiry: 5},
	}
}

func TestAllCandidatesSelectedByDefault(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)

	require.True(t, m.Deliver(session.ID, sampleCandidates(), domain.ScanSourceVision))

	assert.Equal(t, domain.ScanStatusReady, session.Status())
	assert.Equal(t, []string{"Milk", "Bread"}, session.Selected())
}

func TestToggleIsIdempotentPerName(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)
	m.Deliver(session.ID, sampleCandidates(), domain.ScanSourceVision)

	require.NoError(t, session.Toggle("Milk"))
	assert.Equal(t, []string{"Bread"}, session.Selected())

	require.NoError(t, session.Toggle("Milk"))
	assert.Equal(t, []string{"Milk", "Bread"}, session.Selected())

	// Never a duplicate entry regardless of how often it flips.
	require.NoError(t, session.Toggle("Milk"))
	require.NoError(t, session.Toggle("Milk"))
	assert.Len(t, session.Selected(), 2)
}

func TestToggleUnknownCandidate(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)
	m.Deliver(session.ID, sampleCandidates(), domain.ScanSourceVision)

	assert.ErrorIs(t, session.Toggle("Caviar"), domain.ErrUnknownCandidate)
}

func TestToggleBeforeResultsArrive(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, session.Toggle("Milk"), domain.ErrScanNotReady)
}

func TestSingleActiveSessionPerUser(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)

	// Still analyzing: a second capture is disallowed.
	_, err = m.Begin("user-1")
	assert.ErrorIs(t, err, domain.ErrScanInProgress)

	// Another user is unaffected.
	_, err = m.Begin("user-2")
	assert.NoError(t, err)

	// Once results landed, a new capture replaces the stale session.
	m.Deliver(session.ID, sampleCandidates(), domain.ScanSourceVision)
	replacement, err := m.Begin("user-1")
	require.NoError(t, err)

	_, err = m.Get(session.ID)
	assert.ErrorIs(t, err, domain.ErrScanNotFound)
	_, err = m.Get(replacement.ID)
	assert.NoError(t, err)
}

func TestDeliverToTornDownSessionIsDropped(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)

	m.Close(session.ID)

	assert.False(t, m.Deliver(session.ID, sampleCandidates(), domain.ScanSourceVision))
	_, err = m.Get(session.ID)
	assert.ErrorIs(t, err, domain.ErrScanNotFound)
}

func TestEmptyDeliveryMarksSessionEmpty(t *testing.T) {
	m := NewSessionManager()
	session, err := m.Begin("user-1")
	require.NoError(t, err)

	m.Deliver(session.ID, nil, domain.ScanSourceVision)

	assert.Equal(t, domain.ScanStatusEmpty, session.Status())
	assert.Empty(t, session.SelectedCandidates())
}
