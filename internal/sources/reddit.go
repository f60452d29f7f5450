package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/config"
	"github.com/validateme/outreach/internal/models"
)

const (
	snippetLength  = 200
	snippetMarker  = "..."
	createdDateFmt = "2006-01-02"
)

var errUnauthorized = errors.New("reddit API returned status 401")

// RedditSource searches subreddits through Reddit's JSON search endpoint.
// Without app credentials it uses the public host; with them it switches to
// the OAuth host using an application-only token.
type RedditSource struct {
	clientID      string
	clientSecret  string
	baseURL       string
	oauthBaseURL  string
	tokenURL      string
	permalinkBase string
	userAgent     string
	timeFilter    string
	sortOrder     string
	client        *resty.Client

	mu          sync.Mutex
	accessToken string
}

type redditAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	Created     float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// NewRedditSource creates a new Reddit source
func NewRedditSource(cfg *config.Config) *RedditSource {
	return &RedditSource{
		clientID:      cfg.RedditClientID,
		clientSecret:  cfg.RedditClientSecret,
		baseURL:       strings.TrimRight(cfg.RedditBaseURL, "/"),
		oauthBaseURL:  strings.TrimRight(cfg.RedditOAuthBaseURL, "/"),
		tokenURL:      cfg.RedditTokenURL,
		permalinkBase: strings.TrimRight(cfg.RedditPermalink, "/"),
		userAgent:     cfg.UserAgent,
		timeFilter:    cfg.TimeFilter,
		sortOrder:     cfg.SortOrder,
		client:        resty.New().SetTimeout(cfg.RequestTimeout),
	}
}

func (r *RedditSource) GetName() string {
	return "reddit"
}

func (r *RedditSource) usesOAuth() bool {
	return r.clientID != "" && r.clientSecret != ""
}

// SearchChannel runs one search restricted to a single subreddit
func (r *RedditSource) SearchChannel(ctx context.Context, channel, keywords string, limit int) ([]models.Result, error) {
	if !r.usesOAuth() {
		return r.search(ctx, r.baseURL, "", channel, keywords, limit)
	}

	token, err := r.token(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}

	results, err := r.search(ctx, r.oauthBaseURL, token, channel, keywords, limit)
	if !errors.Is(err, errUnauthorized) {
		return results, err
	}

	// Token expired between calls
	logrus.Debug("Reddit token rejected, re-authenticating")
	if token, err = r.token(ctx, true); err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}
	return r.search(ctx, r.oauthBaseURL, token, channel, keywords, limit)
}

func (r *RedditSource) token(ctx context.Context, refresh bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken != "" && !refresh {
		return r.accessToken, nil
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		SetBasicAuth(r.clientID, r.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post(r.tokenURL)

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode())
	}

	var authResp redditAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", err
	}

	if authResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	r.accessToken = authResp.AccessToken
	return r.accessToken, nil
}

func (r *RedditSource) search(ctx context.Context, host, token, channel, keywords string, limit int) ([]models.Result, error) {
	req := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		SetPathParam("channel", channel).
		SetQueryParams(map[string]string{
			"q":           keywords,
			"t":           r.timeFilter,
			"limit":       strconv.Itoa(limit),
			"restrict_sr": "on",
			"sort":        r.sortOrder,
		})

	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(host + "/r/{channel}/search.json")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && token != "" {
		return nil, errUnauthorized
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}

	var searchResp redditSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]models.Result, 0, len(searchResp.Data.Children))
	for _, child := range searchResp.Data.Children {
		results = append(results, r.normalize(child.Data, channel))
	}

	return results, nil
}

func (r *RedditSource) normalize(post redditPost, channel string) models.Result {
	author := post.Author
	if author == "" {
		author = models.RemovedAuthor
	}

	return models.Result{
		AuthorHandle:    author,
		Title:           post.Title,
		Snippet:         Snippet(post.Selftext),
		Channel:         channel,
		EngagementScore: post.Score,
		ReplyCount:      post.NumComments,
		CreatedDate:     time.Unix(int64(post.Created), 0).UTC().Format(createdDateFmt),
		Permalink:       r.permalinkBase + post.Permalink,
	}
}

// Snippet cuts body text to 200 characters, marking the cut with "..."
func Snippet(body string) string {
	runes := []rune(body)
	if len(runes) <= snippetLength {
		return body
	}
	return string(runes[:snippetLength]) + snippetMarker
}
