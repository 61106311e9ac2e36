package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

var queryNoiseRe = regexp.MustCompile(`[^\w\s-]`)

// GoogleCSEEngine searches images through the Google Custom Search JSON API.
type GoogleCSEEngine struct {
	name    string
	apiKey  string
	cseID   string
	baseURL string
	client  *http.Client
}

func NewGoogleCSEEngine(config EngineConfig) (Engine, error) {
	if config.APIKey == "" || config.CSEID == "" {
		return nil, fmt.Errorf("google_cse engine requires api_key and cse_id")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/customsearch/v1"
	}

	return &GoogleCSEEngine{
		name:    config.Name,
		apiKey:  config.APIKey,
		cseID:   config.CSEID,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (e *GoogleCSEEngine) Name() string {
	return e.name
}

func (e *GoogleCSEEngine) Search(ctx context.Context, query string, limit int) ([]Candidate, error) {
	query = cleanQuery(query)
	if query == "" {
		return nil, nil
	}
	if limit > 10 {
		limit = 10
	}

	params := url.Values{}
	params.Set("key", e.apiKey)
	params.Set("cx", e.cseID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("imgSize", "medium")
	params.Set("imgType", "photo")
	params.Set("safe", "active")
	params.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindValidation, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindTransient,
			fmt.Errorf("image search request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recovery.NewError(Capability, recovery.KindTransient,
			fmt.Errorf("image search read failed: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, recovery.NewError(Capability, classifyStatus(resp.StatusCode, body),
			fmt.Errorf("image search returned status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Items []struct {
			Link  string `json:"link"`
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("failed to parse search response: %w", err))
	}

	candidates := make([]Candidate, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		if item.Link == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = "Related Image"
		}
		candidates = append(candidates, Candidate{URL: item.Link, Title: title})
	}
	return candidates, nil
}

// classifyStatus maps API responses onto the run's error taxonomy. A rejected
// key is terminal for the rest of the run; rate limiting is quota.
func classifyStatus(status int, body []byte) recovery.Kind {
	detail := strings.ToLower(string(body))
	switch status {
	case http.StatusBadRequest:
		if strings.Contains(detail, "api key") || strings.Contains(detail, "invalid key") {
			return recovery.KindAuth
		}
		if strings.Contains(detail, "quota") || strings.Contains(detail, "limit") {
			return recovery.KindQuota
		}
		return recovery.KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return recovery.KindAuth
	case http.StatusTooManyRequests:
		return recovery.KindQuota
	default:
		return recovery.KindTransient
	}
}

func cleanQuery(query string) string {
	query = queryNoiseRe.ReplaceAllString(strings.TrimSpace(query), "")
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 100 {
		query = query[:100]
	}
	return query
}
