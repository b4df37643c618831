package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/models"
)

const (
	PathSummary       = "summary/"
	PathMachines      = "machines/"
	PathAILogs        = "ai-logs/"
	PathEnergyCompare = "energy-compare/"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds a client for baseURL. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) Summary(ctx context.Context) (models.Summary, error) {
	var out models.Envelope[models.Summary]
	if err := c.getJSON(ctx, PathSummary, &out); err != nil {
		return models.Summary{}, err
	}
	return out.Data, nil
}

func (c *Client) Machines(ctx context.Context) ([]models.Machine, error) {
	var out models.Envelope[[]models.Machine]
	if err := c.getJSON(ctx, PathMachines, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) AILogs(ctx context.Context) ([]models.AILog, error) {
	var out models.Envelope[[]models.AILog]
	if err := c.getJSON(ctx, PathAILogs, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) EnergyCompare(ctx context.Context) (models.EnergyComparison, error) {
	var out models.Envelope[models.EnergyComparison]
	if err := c.getJSON(ctx, PathEnergyCompare, &out); err != nil {
		return models.EnergyComparison{}, err
	}
	return out.Data, nil
}

// Health reports whether the API root answers with a 2xx status.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	u := c.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: request failed: %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode body: %w", path, err)
	}
	return nil
}
