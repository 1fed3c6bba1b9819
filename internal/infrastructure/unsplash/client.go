package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/propositos-api/internal/domain"
)

const (
	defaultBaseURL = "https://api.unsplash.com"
	perPage        = 20
)

// Client calls the Unsplash search API. The access key is passed per request
// because it lives in the operator-managed settings document and can rotate
// at any time.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// SearchResult is one page of photo candidates.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

type Photo struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	AltDescription string     `json:"alt_description"`
	URLs           PhotoURLs  `json:"urls"`
	Links          PhotoLinks `json:"links"`
	User           PhotoUser  `json:"user"`
}

type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type PhotoLinks struct {
	HTML string `json:"html"`
}

type PhotoUser struct {
	Name  string     `json:"name"`
	Links PhotoLinks `json:"links"`
}

// Search fetches one page of results. Network failures and non-2xx replies
// come back wrapped in domain.ErrUnavailable so handlers can map them
// without inspecting transport details.
func (c *Client) Search(ctx context.Context, accessKey, query string, page int) (*SearchResult, error) {
	u, err := url.Parse(c.baseURL + "/search/photos")
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search request failed: %w", domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("image search rejected credential: %w", domain.ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("image search returned status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var out SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode image search response: %w", err)
	}
	return &out, nil
}
