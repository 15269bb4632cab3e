// Package campaign is the HTTP client for the external email campaign
// provider: lists, segments, and the campaign lifecycle calls.
package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the surface the newsletter service depends on. The concrete
// Client talks to the real provider; tests substitute a mock.
type Provider interface {
	ListLists(ctx context.Context) (*ListsResponse, error)
	ListSegments(ctx context.Context) (*SegmentsResponse, error)
	CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*CampaignResponse, error)
	UpdateCampaign(ctx context.Context, id string, req *UpdateCampaignRequest) (*CampaignResponse, error)
	SendTest(ctx context.Context, id string, req *TestSendRequest) (*SendResponse, error)
	SendFinal(ctx context.Context, id string) (*SendResponse, error)
}

// Client is the campaign provider API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new provider API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// request performs an HTTP request to the provider API
func (c *Client) request(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("provider error: %s", errResp.Error)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// ListLists lists the distribution lists available for sending
func (c *Client) ListLists(ctx context.Context) (*ListsResponse, error) {
	var resp ListsResponse
	if err := c.request(ctx, http.MethodGet, "/api/v1/lists", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSegments lists the subscriber segments
func (c *Client) ListSegments(ctx context.Context) (*SegmentsResponse, error) {
	var resp SegmentsResponse
	if err := c.request(ctx, http.MethodGet, "/api/v1/segments", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCampaign creates a new campaign
func (c *Client) CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*CampaignResponse, error) {
	var resp CampaignResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/campaigns", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCampaign replaces the content and settings of an existing campaign
func (c *Client) UpdateCampaign(ctx context.Context, id string, req *UpdateCampaignRequest) (*CampaignResponse, error) {
	var resp CampaignResponse
	if err := c.request(ctx, http.MethodPut, "/api/v1/campaigns/"+id, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendTest sends the campaign to the given test recipients only
func (c *Client) SendTest(ctx context.Context, id string, req *TestSendRequest) (*SendResponse, error) {
	var resp SendResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/campaigns/"+id+"/test", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendFinal sends the campaign to its configured lists and segments
func (c *Client) SendFinal(ctx context.Context, id string) (*SendResponse, error) {
	var resp SendResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/campaigns/"+id+"/send", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
