package vision

import (
	"testing"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsOutOfRangeValues(t *testing.T) {
	raw := "```json\n[{\"name\":\"Milk\",\"confidence\":1.4,\"estimatedExpiryDays\":500}]\n```"

	candidates, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, domain.DetectionCandidate{
		Name:              "Milk",
		Category:          "Other",
		Confidence:        1.0,
		SuggestedLocation: domain.LocationPantry,
		EstimatedExpiry:   365,
	}, candidates[0])
}

func TestNormalizeNegativeConfidenceClampsAndDrops(t *testing.T) {
	raw := `[{"name":"Milk","confidence":-0.5,"estimatedExpiryDays":7}]`

	_, err := Normalize(raw)
	// Clamped to 0, which is under the acceptance threshold, leaving nothing.
	assert.ErrorIs(t, err, domain.ErrNoItemsDetected)
}

func TestNormalizeFenceStrippingIsTransparent(t *testing.T) {
	unfenced := `[{"name":"Eggs","category":"Dairy","confidence":0.8,"suggestedLocation":"Fridge","estimatedExpiryDays":21}]`
	fenced := "```json\n" + unfenced + "\n```"
	bareFenced := "```\n" + unfenced + "\n```"

	want, err := Normalize(unfenced)
	require.NoError(t, err)

	got, err := Normalize(fenced)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = Normalize(bareFenced)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalizeNonArrayIsMalformed(t *testing.T) {
	for _, raw := range []string{
		`{"items":[]}`,
		`"just a string"`,
		`42`,
		`null`,
		"```json\nnull\n```",
		`not json at all`,
		"",
	} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, domain.ErrMalformedReply, "raw: %q", raw)
	}
}

func TestNormalizeEmptyArrayIsNoItemsDetected(t *testing.T) {
	_, err := Normalize("[]")
	assert.ErrorIs(t, err, domain.ErrNoItemsDetected)
	assert.NotErrorIs(t, err, domain.ErrMalformedReply)
}

func TestNormalizeDefaults(t *testing.T) {
	raw := `[{"name":"Mystery Sauce","suggestedLocation":"Garage","estimatedExpiryDays":0}]`

	candidates, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "Other", c.Category)
	assert.Equal(t, domain.LocationPantry, c.SuggestedLocation)
	assert.Equal(t, defaultConfidence, c.Confidence)
	assert.Equal(t, 1, c.EstimatedExpiry)
}

func TestNormalizeDropsLowConfidenceAndNamelessElements(t *testing.T) {
	raw := `[
		{"name":"Bread","confidence":0.9,"estimatedExpiryDays":5},
		{"name":"Ghost","confidence":0.1,"estimatedExpiryDays":5},
		{"name":"","confidence":0.9,"estimatedExpiryDays":5},
		{"confidence":0.9,"estimatedExpiryDays":5}
	]`

	candidates, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Bread", candidates[0].Name)
}

func TestNormalizeKeepsValidLocations(t *testing.T) {
	raw := `[
		{"name":"Peas","confidence":0.9,"suggestedLocation":"Freezer","estimatedExpiryDays":90},
		{"name":"Butter","confidence":0.9,"suggestedLocation":"Fridge","estimatedExpiryDays":30}
	]`

	candidates, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, domain.LocationFreezer, candidates[0].SuggestedLocation)
	assert.Equal(t, domain.LocationFridge, candidates[1].SuggestedLocation)
}

func TestFallbackResultsAreDeterministic(t *testing.T) {
	first := FallbackResults()
	second := FallbackResults()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	for _, c := range first {
		assert.GreaterOrEqual(t, c.Confidence, minConfidence)
		assert.GreaterOrEqual(t, c.EstimatedExpiry, 1)
		assert.LessOrEqual(t, c.EstimatedExpiry, maxExpiryDays)
	}
}
