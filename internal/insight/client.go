package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client calls the external text-generation service over HTTP. The wire
// contract is fixed: request {"spendingData"}, response {"savingsTips"}.
// The client carries no timeout of its own and never retries; callers
// cancel through the context.
type Client struct {
	endpoint string
	apiToken string
	client   *http.Client
}

func NewClient(endpoint, apiToken string) *Client {
	return &Client{
		endpoint: endpoint,
		apiToken: apiToken,
		client:   &http.Client{},
	}
}

type tipsRequest struct {
	SpendingData string `json:"spendingData"`
}

type tipsResponse struct {
	SavingsTips string `json:"savingsTips"`
}

func (c *Client) SavingsTips(ctx context.Context, spendingData string) (string, error) {
	body, err := json.Marshal(tipsRequest{SpendingData: spendingData})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling insight service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("insight service returned %d: %s", resp.StatusCode, snippet)
	}

	var out tipsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if out.SavingsTips == "" {
		return "", fmt.Errorf("insight service returned no tips")
	}

	return out.SavingsTips, nil
}
