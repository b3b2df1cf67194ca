package vision

import (
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
)

// FallbackResults returns the deterministic substitute candidate set used when
// live detection cannot run or its reply is unusable: no credential, a failed
// network call, or an unparsable reply. It is never used for a well-formed
// empty detection; "the model saw nothing" propagates to the user as-is.
func FallbackResults() []domain.DetectionCandidate {
	return []domain.DetectionCandidate{
		{Name: "Milk", Category: "Dairy", Confidence: 0.9, SuggestedLocation: domain.LocationFridge, EstimatedExpiry: 7},
		{Name: "Eggs", Category: "Dairy", Confidence: 0.9, SuggestedLocation: domain.LocationFridge, EstimatedExpiry: 21},
		{Name: "Bread", Category: "Bakery", Confidence: 0.9, SuggestedLocation: domain.LocationPantry, EstimatedExpiry: 5},
		{Name: "Apples", Category: "Produce", Confidence: 0.9, SuggestedLocation: domain.LocationFridge, EstimatedExpiry: 14},
		{Name: "Rice", Category: "Grains", Confidence: 0.9, SuggestedLocation: domain.LocationPantry, EstimatedExpiry: 365},
	}
}
