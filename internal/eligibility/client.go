package eligibility

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// Config holds the eligibility service connection settings.
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	RetryMax int
}

// Client submits eligibility records to the external checking service.
// Transient HTTP failures are retried with backoff by the underlying
// retryable transport; a reply that still fails after retries is a
// submission failure for that record.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    retryClient.StandardClient(),
		log:     log.With().Str("component", "eligibility-client").Logger(),
	}
}

// Submit posts one record to the /eligibility/check endpoint and parses the
// outcome, coverage class and note out of the reply.
func (c *Client) Submit(ctx context.Context, rec *model.EligibilityRecord) (*model.SubmissionResult, error) {
	uri, err := url.JoinPath(c.baseURL, "/eligibility/check")
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}

	body, err := json.Marshal(buildPayload(rec))
	if err != nil {
		return nil, fmt.Errorf("marshal payload for visit %s: %w", rec.VisitID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json; charset=utf-8")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request for visit %s: %w", rec.VisitID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for visit %s: %w", rec.VisitID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("eligibility service returned %s for visit %s: %s",
			resp.Status, rec.VisitID, truncate(respBody, 512))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response for visit %s: %w", rec.VisitID, err)
	}

	result := parsed.toResult()
	c.log.Debug().
		Str("visit_id", rec.VisitID).
		Str("outcome", result.Outcome).
		Str("class", result.Class).
		Msg("record submitted")

	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
