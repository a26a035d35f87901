package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/macrolens/nutrilog/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultPageSize    = 15
	defaultDataTypes   = "Foundation,SR Legacy"
	defaultMaxRetries  = 2
	defaultBackoffBase = 500 * time.Millisecond
)

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	pageSize    int
	dataTypes   string
	maxRetries  int
	backoffBase time.Duration
	debug       bool
}

// NewClient creates a new USDA API client
func NewClient(apiKey, baseURL string) *Client {
	// USDA allows 1000 requests per hour
	// rate.Limit is requests per second, so 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10) // burst of 10 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		pageSize:    defaultPageSize,
		dataTypes:   defaultDataTypes,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetRetryPolicy sets how many times a 429 is retried and the first backoff delay
func (c *Client) SetRetryPolicy(maxRetries int, backoffBase time.Duration) {
	if maxRetries >= 0 {
		c.maxRetries = maxRetries
	}
	if backoffBase > 0 {
		c.backoffBase = backoffBase
	}
}

// SetRateLimit replaces the client-side limiter
func (c *Client) SetRateLimit(requestsPerHour, burst int) {
	if requestsPerHour <= 0 || burst <= 0 {
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), burst)
}

// SetSearchOptions sets the page size and data types used by SearchFoods
func (c *Client) SetSearchOptions(pageSize int, dataTypes string) {
	if pageSize > 0 {
		c.pageSize = pageSize
	}
	if dataTypes != "" {
		c.dataTypes = dataTypes
	}
}

// exponentialBackoff returns the delay before retry number attempt (1-based)
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-1))
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Nutrilog/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}

	return resp, nil
}

// getJSON fetches reqURL and decodes the body into dest. A 429 is retried
// with exponential backoff; once retries run out domain.ErrRateLimited is
// returned so callers can back off instead of reporting a failure.
func (c *Client) getJSON(ctx context.Context, reqURL string, dest any) error {
	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			return err
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if c.debug {
			log.Printf("[USDA] GET %s -> %d (attempt %d)", redact(reqURL), resp.StatusCode, attempt+1)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			if attempt >= c.maxRetries {
				log.Printf("[USDA] Still rate limited after %d retries", c.maxRetries)
				return domain.ErrRateLimited
			}
			delay := exponentialBackoff(c.backoffBase, attempt+1)
			log.Printf("[USDA] Rate limited (attempt %d), retrying in %s", attempt+1, delay)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			continue
		case resp.StatusCode == http.StatusNotFound:
			return domain.ErrFoodNotFound
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			log.Printf("[USDA] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
			return fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
		}

		if readErr != nil {
			return fmt.Errorf("%w: read body: %v", domain.ErrUSDAAPIFailure, readErr)
		}
		if err := json.Unmarshal(body, dest); err != nil {
			log.Printf("[USDA] JSON decode error: %v", err)
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}

// SearchFoods searches for foods in the USDA database
func (c *Client) SearchFoods(ctx context.Context, query string) ([]domain.FoodSearchResult, error) {
	log.Printf("[USDA] SearchFoods called with query: %q", query)

	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", c.dataTypes)
	params.Add("pageSize", strconv.Itoa(c.pageSize))

	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	var searchResp searchResponse
	if err := c.getJSON(ctx, reqURL, &searchResp); err != nil {
		return nil, err
	}

	log.Printf("[USDA] Found %d foods for query: %q", len(searchResp.Foods), query)
	return mapSearchResults(&searchResp), nil
}

// GetFoodDetails retrieves detailed nutrition information for a specific food by FDC ID
func (c *Client) GetFoodDetails(ctx context.Context, fdcID int) (*domain.FoodRecord, error) {
	params := url.Values{}
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/v1/food/%d?%s", c.baseURL, fdcID, params.Encode())

	var food foodDetails
	if err := c.getJSON(ctx, reqURL, &food); err != nil {
		return nil, err
	}
	if food.FdcID == 0 {
		food.FdcID = fdcID
	}

	return MapToFoodRecord(&food), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// redact hides the api key in logged URLs.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
