package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils"
)

const detectionPrompt = "Identify every grocery item visible in this image. Respond ONLY with a valid JSON array. " +
	"Each element must contain exactly these fields: 'name' (string), 'category' (string), " +
	"'confidence' (number between 0 and 1), 'suggestedLocation' (one of 'Pantry', 'Fridge', 'Freezer'), " +
	"and 'estimatedExpiryDays' (integer number of days until the item typically expires). " +
	"Do not include any explanations, markdown formatting, or extra text."

type (
	// Gateway performs one multimodal detection request. It never retries; any
	// transport or shape failure surfaces as domain.ErrNetworkFailure and the
	// caller escalates to the fallback engine exactly once.
	Gateway interface {
		Detect(ctx context.Context, image domain.RawImage, apiKey string) (string, error)
	}

	gateway struct {
		client  *http.Client
		baseURL string
		model   func() string
	}
)

func NewGateway() Gateway {
	return &gateway{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://generativelanguage.googleapis.com",
		model:   func() string { return utils.GetConfig("GEMINI_MODEL") },
	}
}

// NewGatewayWithEndpoint points the gateway at a custom endpoint, used in tests.
func NewGatewayWithEndpoint(client *http.Client, baseURL string, model string) Gateway {
	return &gateway{
		client:  client,
		baseURL: baseURL,
		model:   func() string { return model },
	}
}

func (g *gateway) Detect(ctx context.Context, image domain.RawImage, apiKey string) (string, error) {
	if apiKey == "" {
		return "", domain.ErrCredentialMissing
	}

	mimeType := image.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model(), apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": detectionPrompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image.Data),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"topP":             0.8,
			"topK":             40,
			"responseMimeType": "application/json",
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", domain.ErrNetworkFailure, resp.Status, string(bodyBytes))
	}

	var visionResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	if len(visionResp.Candidates) == 0 || len(visionResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty model reply", domain.ErrNetworkFailure)
	}

	return visionResp.Candidates[0].Content.Parts[0].Text, nil
}
