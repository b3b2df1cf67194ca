package scan

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils/storage"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/credential"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/pantry"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/vision"
	"github.com/google/uuid"
)

type (
	ScanService interface {
		CreateScan(ctx context.Context, device CaptureDevice, userID string) (domain.CreateScanResponse, error)
		GetScan(ctx context.Context, scanID string, userID string) (domain.ScanSessionResponse, error)
		ToggleSelection(ctx context.Context, scanID string, req domain.ToggleSelectionRequest, userID string) (domain.ScanSessionResponse, error)
		CancelScan(ctx context.Context, scanID string, userID string) error
		CommitScan(ctx context.Context, scanID string, req domain.CommitScanRequest, userID string) (domain.CommitResult, error)
	}

	scanService struct {
		sessions   *SessionManager
		resolver   credential.CredentialResolver
		gateway    vision.Gateway
		committer  pantry.Committer
		s3         storage.AwsS3
		captureAck func()
	}
)

func NewScanService(sessions *SessionManager, resolver credential.CredentialResolver, gateway vision.Gateway, committer pantry.Committer, s3 storage.AwsS3) ScanService {
	return &scanService{
		sessions:  sessions,
		resolver:  resolver,
		gateway:   gateway,
		committer: committer,
		s3:        s3,
		// The client surface keys its shutter feedback off this signal.
		captureAck: func() { log.Print("capture acknowledged") },
	}
}

func (s *scanService) CreateScan(ctx context.Context, device CaptureDevice, userID string) (domain.CreateScanResponse, error) {
	controller := NewCaptureController(device)
	controller.SetCaptureHook(s.captureAck)
	if controller.RequestPermission() != PermissionGranted {
		return domain.CreateScanResponse{}, domain.ErrPermissionDenied
	}

	image, err := controller.Capture(ctx)
	if err != nil {
		return domain.CreateScanResponse{}, err
	}

	session, err := s.sessions.Begin(userID)
	if err != nil {
		return domain.CreateScanResponse{}, err
	}

	if s.s3 != nil {
		fileName := fmt.Sprintf("scan-%s", session.ID.String())
		objectKey, upErr := s.s3.UploadBytes(ctx, fileName, image.Data, image.MimeType, "scans", storage.AllowImage...)
		if upErr != nil {
			// Image storage is provenance, not pipeline-critical.
			log.Printf("scan image upload failed for session %s: %v", session.ID, upErr)
		} else {
			session.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	// Detection runs detached from the request context: cancelling the
	// capture surface does not abort the in-flight call, its result is
	// discarded on delivery if the session is gone.
	go s.analyze(context.Background(), session.ID, userID, image)

	return domain.CreateScanResponse{
		ScanID:   session.ID.String(),
		ImageURL: session.ImageURL,
		Status:   domain.ScanStatusAnalyzing,
	}, nil
}

// analyze runs detect → normalize, escalating to the fallback engine exactly
// once for credential, network, or parse failures. A well-formed empty
// detection is delivered as-is; fabricated data must not mask it.
func (s *scanService) analyze(ctx context.Context, scanID uuid.UUID, userID string, image domain.RawImage) {
	apiKey, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrCredentialMissing) {
			log.Printf("credential resolution failed for session %s: %v", scanID, err)
		}
		s.deliver(scanID, vision.FallbackResults(), domain.ScanSourceFallback)
		return
	}

	raw, err := s.gateway.Detect(ctx, image, apiKey)
	if err != nil {
		log.Printf("vision request failed for session %s: %v", scanID, err)
		s.deliver(scanID, vision.FallbackResults(), domain.ScanSourceFallback)
		return
	}

	candidates, err := vision.Normalize(raw)
	if err != nil {
		if errors.Is(err, domain.ErrNoItemsDetected) {
			s.deliver(scanID, nil, domain.ScanSourceVision)
			return
		}
		log.Printf("unusable vision reply for session %s: %v (raw: %q)", scanID, err, raw)
		s.deliver(scanID, vision.FallbackResults(), domain.ScanSourceFallback)
		return
	}

	s.deliver(scanID, candidates, domain.ScanSourceVision)
}

func (s *scanService) deliver(scanID uuid.UUID, candidates []domain.DetectionCandidate, source string) {
	if !s.sessions.Deliver(scanID, candidates, source) {
		log.Printf("discarding stale detection result for torn-down session %s", scanID)
	}
}

func (s *scanService) GetScan(ctx context.Context, scanID string, userID string) (domain.ScanSessionResponse, error) {
	session, err := s.requireSession(scanID, userID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}
	return session.snapshot(), nil
}

func (s *scanService) ToggleSelection(ctx context.Context, scanID string, req domain.ToggleSelectionRequest, userID string) (domain.ScanSessionResponse, error) {
	session, err := s.requireSession(scanID, userID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}

	if err := session.Toggle(req.Name); err != nil {
		return domain.ScanSessionResponse{}, err
	}
	return session.snapshot(), nil
}

func (s *scanService) CancelScan(ctx context.Context, scanID string, userID string) error {
	session, err := s.requireSession(scanID, userID)
	if err != nil {
		return err
	}

	s.sessions.Close(session.ID)
	return nil
}

func (s *scanService) CommitScan(ctx context.Context, scanID string, req domain.CommitScanRequest, userID string) (domain.CommitResult, error) {
	session, err := s.requireSession(scanID, userID)
	if err != nil {
		return domain.CommitResult{}, err
	}

	switch session.Status() {
	case domain.ScanStatusAnalyzing:
		return domain.CommitResult{}, domain.ErrScanNotReady
	case domain.ScanStatusEmpty:
		return domain.CommitResult{}, domain.ErrNoItemsDetected
	}

	overrides := make(map[string]domain.CommitOverride, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides[o.Name] = o
	}

	selected := session.SelectedCandidates()
	items := make([]domain.SelectedCandidate, 0, len(selected))
	for _, c := range selected {
		item := domain.SelectedCandidate{DetectionCandidate: c, Quantity: 1}
		if o, ok := overrides[c.Name]; ok {
			if o.Quantity > 0 {
				item.Quantity = o.Quantity
			}
			item.Unit = o.Unit
		}
		items = append(items, item)
	}

	result, err := s.committer.CommitCandidates(ctx, userID, items, session.ImageURL)
	if err != nil {
		return result, err
	}

	// A committed session is done; the next capture starts fresh.
	s.sessions.Close(session.ID)
	return result, nil
}

func (s *scanService) requireSession(scanID string, userID string) (*ScanSession, error) {
	id, err := uuid.Parse(scanID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return session, nil
}
