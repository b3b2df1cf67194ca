package domain

import (
	"errors"
	"fmt"
)

// Storage locations a detection may suggest. Anything else is coerced to Pantry.
const (
	LocationPantry  = "Pantry"
	LocationFridge  = "Fridge"
	LocationFreezer = "Freezer"
)

// Scan session lifecycle.
const (
	ScanStatusAnalyzing = "analyzing"
	ScanStatusReady     = "ready"
	ScanStatusEmpty     = "empty"
)

// Where the candidate list came from.
const (
	ScanSourceVision   = "vision"
	ScanSourceFallback = "fallback"
)

var (
	MessageSuccessCreateScan      = "scan started successfully"
	MessageSuccessGetScan         = "scan session retrieved successfully"
	MessageSuccessToggleSelection = "selection updated successfully"
	MessageSuccessCancelScan      = "scan cancelled successfully"
	MessageSuccessCommitScan      = "scanned items committed successfully"

	MessageFailedCreateScan      = "failed to start scan"
	MessageFailedGetScan         = "failed to retrieve scan session"
	MessageFailedToggleSelection = "failed to update selection"
	MessageFailedCancelScan      = "failed to cancel scan"
	MessageFailedCommitScan      = "failed to commit scanned items"

	ErrPermissionDenied  = errors.New("capture permission denied")
	ErrHardwareNotReady  = errors.New("capture device not ready")
	ErrCredentialMissing = errors.New("no vision API credential configured")
	ErrNetworkFailure    = errors.New("vision API request failed")
	ErrMalformedReply    = errors.New("vision reply could not be parsed")
	ErrNoItemsDetected   = errors.New("no items detected in image")
	ErrScanInProgress    = errors.New("a scan is already in progress")
	ErrScanNotFound      = errors.New("scan session not found")
	ErrScanNotReady      = errors.New("scan session is still analyzing")
	ErrNoItemsSelected   = errors.New("no items selected for commit")
	ErrUnknownCandidate  = errors.New("candidate not part of scan session")
)

// CommitError reports which item insertion failed. Items inserted before it
// stay in the store; the commit is not rolled back.
type CommitError struct {
	ItemName string
	Err      error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit item %q: %v", e.ItemName, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

type (
	// RawImage is the payload produced by a capture device.
	RawImage struct {
		Data     []byte
		MimeType string
		Filename string
	}

	// DetectionCandidate is a normalized item proposal from one scan. It is
	// never persisted; confidence only gates acceptance at scan time.
	DetectionCandidate struct {
		Name              string  `json:"name"`
		Category          string  `json:"category"`
		Confidence        float64 `json:"confidence"`
		SuggestedLocation string  `json:"suggestedLocation"`
		EstimatedExpiry   int     `json:"estimatedExpiryDays"`
	}

	CreateScanResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url,omitempty"`
		Status   string `json:"status"`
	}

	ScanSessionResponse struct {
		ScanID     string               `json:"scan_id"`
		Status     string               `json:"status"`
		Source     string               `json:"source,omitempty"`
		Candidates []DetectionCandidate `json:"candidates,omitempty"`
		Selected   []string             `json:"selected,omitempty"`
	}

	ToggleSelectionRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CommitOverride struct {
		Name     string `json:"name" validate:"required"`
		Quantity int    `json:"quantity" validate:"omitempty,min=1"`
		Unit     string `json:"unit" validate:"omitempty"`
	}

	CommitScanRequest struct {
		Overrides []CommitOverride `json:"overrides" validate:"omitempty,dive"`
	}

	// SelectedCandidate is a curated candidate headed for the commit
	// pipeline, with quantity and unit either defaulted or user-overridden.
	SelectedCandidate struct {
		DetectionCandidate
		Quantity int
		Unit     string
	}

	CommitResult struct {
		HouseholdID      string               `json:"household_id"`
		HouseholdCreated bool                 `json:"household_created"`
		InsertedItems    []PantryItemResponse `json:"inserted_items"`
	}
)
