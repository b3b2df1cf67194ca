package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
)

const (
	// Candidates under this confidence are discarded as likely false positives.
	minConfidence = 0.3
	// Confidence the model omitted is accepted with a middle value so the
	// threshold filter still applies downstream.
	defaultConfidence = 0.5

	maxExpiryDays = 365
)

type rawCandidate struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Confidence        *float64 `json:"confidence"`
	SuggestedLocation string   `json:"suggestedLocation"`
	EstimatedExpiry   *int     `json:"estimatedExpiryDays"`
}

// Normalize turns the model's free-form text reply into validated detection
// candidates. The reply is untrusted: it may be fenced in markdown, malformed,
// carry out-of-range numbers, or miss fields entirely.
//
// A reply that parses but yields nothing usable returns
// domain.ErrNoItemsDetected, which is a legitimate empty result and must never
// be substituted with fallback data. Anything unparsable returns
// domain.ErrMalformedReply.
func Normalize(raw string) ([]domain.DetectionCandidate, error) {
	text := stripFences(raw)

	// json.Unmarshal accepts "null" into a nil slice; only an actual array is
	// a valid reply.
	if !strings.HasPrefix(text, "[") {
		return nil, fmt.Errorf("%w: reply is not a JSON array", domain.ErrMalformedReply)
	}

	var elements []rawCandidate
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
	}

	candidates := make([]domain.DetectionCandidate, 0, len(elements))
	for _, el := range elements {
		name := strings.TrimSpace(el.Name)
		if name == "" {
			continue
		}

		category := strings.TrimSpace(el.Category)
		if category == "" {
			category = "Other"
		}

		location := el.SuggestedLocation
		switch location {
		case domain.LocationPantry, domain.LocationFridge, domain.LocationFreezer:
		default:
			location = domain.LocationPantry
		}

		confidence := defaultConfidence
		if el.Confidence != nil {
			confidence = clampFloat(*el.Confidence, 0, 1)
		}
		if confidence < minConfidence {
			continue
		}

		expiryDays := 1
		if el.EstimatedExpiry != nil {
			expiryDays = clampInt(*el.EstimatedExpiry, 1, maxExpiryDays)
		}

		candidates = append(candidates, domain.DetectionCandidate{
			Name:              name,
			Category:          category,
			Confidence:        confidence,
			SuggestedLocation: location,
			EstimatedExpiry:   expiryDays,
		})
	}

	if len(candidates) == 0 {
		return nil, domain.ErrNoItemsDetected
	}

	return candidates, nil
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in. Stripping is transparent: a fenced reply normalizes identically to
// its unfenced equivalent.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
