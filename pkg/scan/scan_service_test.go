package scan

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	key string
	err error
}

func (r *fakeResolver) Resolve(ctx context.Context, userID string) (string, error) {
	return r.key, r.err
}

type fakeGateway struct {
	reply string
	err   error
	calls atomic.Int32
}

func (g *fakeGateway) Detect(ctx context.Context, image domain.RawImage, apiKey string) (string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type fakeCommitter struct {
	result domain.CommitResult
	err    error
	got    []domain.SelectedCandidate
}

func (c *fakeCommitter) CommitCandidates(ctx context.Context, userID string, items []domain.SelectedCandidate, imageURL string) (domain.CommitResult, error) {
	c.got = items
	if c.err != nil {
		return domain.CommitResult{}, c.err
	}
	return c.result, nil
}

func readyImageDevice() CaptureDevice {
	return &fakeDevice{ready: true, image: domain.RawImage{Data: []byte("img"), MimeType: "image/jpeg"}}
}

func waitForStatus(t *testing.T, svc ScanService, scanID string, userID string, status string) domain.ScanSessionResponse {
	t.Helper()
	var snapshot domain.ScanSessionResponse
	require.Eventually(t, func() bool {
		res, err := svc.GetScan(context.Background(), scanID, userID)
		if err != nil {
			return false
		}
		snapshot = res
		return res.Status == status
	}, 2*time.Second, 10*time.Millisecond)
	return snapshot
}

func TestCreateScanWithoutCredentialUsesFallbackWithoutNetworkCall(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{err: domain.ErrCredentialMissing},
		gateway,
		&fakeCommitter{},
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ScanStatusAnalyzing, res.Status)

	snapshot := waitForStatus(t, svc, res.ScanID, "user-1", domain.ScanStatusReady)
	assert.Equal(t, domain.ScanSourceFallback, snapshot.Source)
	assert.Equal(t, vision.FallbackResults(), snapshot.Candidates)
	assert.Equal(t, int32(0), gateway.calls.Load())
}

func TestCreateScanNetworkFailureUsesFallback(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{err: domain.ErrNetworkFailure},
		&fakeCommitter{},
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)

	snapshot := waitForStatus(t, svc, res.ScanID, "user-1", domain.ScanStatusReady)
	assert.Equal(t, domain.ScanSourceFallback, snapshot.Source)
	assert.Equal(t, vision.FallbackResults(), snapshot.Candidates)
}

func TestCreateScanMalformedReplyUsesFallback(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{reply: `{"not":"an array"}`},
		&fakeCommitter{},
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)

	snapshot := waitForStatus(t, svc, res.ScanID, "user-1", domain.ScanStatusReady)
	assert.Equal(t, domain.ScanSourceFallback, snapshot.Source)
}

func TestCreateScanEmptyDetectionIsNotMaskedByFallback(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{reply: "[]"},
		&fakeCommitter{},
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)

	snapshot := waitForStatus(t, svc, res.ScanID, "user-1", domain.ScanStatusEmpty)
	assert.Equal(t, domain.ScanSourceVision, snapshot.Source)
	assert.Empty(t, snapshot.Candidates)

	// An empty result is terminal: there is nothing to commit.
	_, err = svc.CommitScan(context.Background(), res.ScanID, domain.CommitScanRequest{}, "user-1")
	assert.ErrorIs(t, err, domain.ErrNoItemsDetected)
}

func TestCommitScanAppliesOverridesAndClosesSession(t *testing.T) {
	committer := &fakeCommitter{result: domain.CommitResult{HouseholdID: "h-1"}}
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{reply: `[
			{"name":"Milk","category":"Dairy","confidence":0.9,"suggestedLocation":"Fridge","estimatedExpiryDays":7},
			{"name":"Bread","category":"Bakery","confidence":0.8,"suggestedLocation":"Pantry","estimatedExpiryDays":5}
		]`},
		committer,
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)
	waitForStatus(t, svc, res.ScanID, "user-1", domain.ScanStatusReady)

	// Deselect Bread, override Milk's quantity.
	_, err = svc.ToggleSelection(context.Background(), res.ScanID, domain.ToggleSelectionRequest{Name: "Bread"}, "user-1")
	require.NoError(t, err)

	result, err := svc.CommitScan(context.Background(), res.ScanID, domain.CommitScanRequest{
		Overrides: []domain.CommitOverride{{Name: "Milk", Quantity: 2, Unit: "liter"}},
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "h-1", result.HouseholdID)

	require.Len(t, committer.got, 1)
	assert.Equal(t, "Milk", committer.got[0].Name)
	assert.Equal(t, 2, committer.got[0].Quantity)
	assert.Equal(t, "liter", committer.got[0].Unit)

	// Session destroyed on commit.
	_, err = svc.GetScan(context.Background(), res.ScanID, "user-1")
	assert.ErrorIs(t, err, domain.ErrScanNotFound)
}

func TestCommitScanWhileAnalyzing(t *testing.T) {
	gateway := &fakeGateway{reply: "[]"}
	sessions := NewSessionManager()
	svc := NewScanService(sessions, &fakeResolver{key: "key"}, gateway, &fakeCommitter{}, nil)

	session, err := sessions.Begin("user-1")
	require.NoError(t, err)

	_, err = svc.CommitScan(context.Background(), session.ID.String(), domain.CommitScanRequest{}, "user-1")
	assert.ErrorIs(t, err, domain.ErrScanNotReady)
}

func TestScanOwnershipEnforced(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{err: domain.ErrCredentialMissing},
		&fakeGateway{},
		&fakeCommitter{},
		nil,
	)

	res, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)

	_, err = svc.GetScan(context.Background(), res.ScanID, "user-2")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestCreateScanFiresCaptureAck(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{err: domain.ErrCredentialMissing},
		&fakeGateway{},
		&fakeCommitter{},
		nil,
	).(*scanService)

	var acks int
	svc.captureAck = func() { acks++ }

	_, err := svc.CreateScan(context.Background(), readyImageDevice(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, acks)

	// A failed capture gets no acknowledgment.
	_, err = svc.CreateScan(context.Background(), &fakeDevice{ready: false}, "user-2")
	require.Error(t, err)
	assert.Equal(t, 1, acks)
}

func TestCreateScanWithUnreadyDevice(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{},
		&fakeCommitter{},
		nil,
	)

	_, err := svc.CreateScan(context.Background(), &fakeDevice{ready: false}, "user-1")
	assert.ErrorIs(t, err, domain.ErrHardwareNotReady)
}

func TestCreateScanWithDeniedPermission(t *testing.T) {
	svc := NewScanService(
		NewSessionManager(),
		&fakeResolver{key: "key"},
		&fakeGateway{},
		&fakeCommitter{},
		nil,
	)

	_, err := svc.CreateScan(context.Background(), &deniedDevice{fakeDevice{ready: true}}, "user-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
