package update

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	appErrors "imagetoolbox/internal/errors"
)

// Default configuration values.
const (
	DefaultFeedURL   = "https://github.com/T8RIN/ImageResizer/releases.atom"
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "imagetoolbox-update-checker"
)

// Error variables for specific error conditions.
var (
	ErrNetworkFailure = appErrors.New(appErrors.CodeNetworkFailure, "network request failed", nil)
	ErrRateLimited    = appErrors.New(appErrors.CodeNetworkFailure, "rate limited by feed host", nil)
)

// UpdateInfo contains the result of a version check.
type UpdateInfo struct {
	CurrentVersion  string
	LatestTag       string
	UpdateAvailable bool
	// Newer is set when both versions parse as semver and the tag is greater.
	Newer        bool
	ReleaseURL   string
	ReleaseNotes string
	PublishedAt  time.Time
	CheckedAt    time.Time
}

// Checker fetches the release feed and compares it to the running build.
type Checker struct {
	feedURL    string
	userAgent  string
	httpClient *http.Client
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithFeedURL overrides the release feed location.
func WithFeedURL(url string) CheckerOption {
	return func(c *Checker) {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			c.feedURL = trimmed
		}
	}
}

// WithHTTPClient sets a custom HTTP client for the checker.
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with feed requests.
func WithUserAgent(ua string) CheckerOption {
	return func(c *Checker) {
		c.userAgent = ua
	}
}

// NewChecker creates a checker for the default release feed.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		feedURL:   DefaultFeedURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeedURL reports the feed the checker queries.
func (c *Checker) FeedURL() string {
	return c.feedURL
}

// Check fetches the feed and compares its latest tag to currentVersion.
// Any tag that differs from currentVersion is reported as an update, so a
// rolled-back release still prompts.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*UpdateInfo, error) {
	entry, err := c.fetchLatestEntry(ctx)
	if err != nil {
		return nil, err
	}

	current := strings.TrimSpace(currentVersion)
	latest := entry.Tag()

	info := &UpdateInfo{
		CurrentVersion:  current,
		LatestTag:       latest,
		UpdateAvailable: latest != current,
		ReleaseURL:      entry.AlternateURL(),
		ReleaseNotes:    strings.TrimSpace(entry.Content),
		PublishedAt:     entry.Updated,
		CheckedAt:       time.Now(),
	}
	if info.UpdateAvailable {
		info.Newer = isNewer(current, latest)
	}
	return info, nil
}

func (c *Checker) fetchLatestEntry(ctx context.Context) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/atom+xml, application/xml;q=0.9, */*;q=0.5")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return Entry{}, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return Entry{}, fmt.Errorf("%w: status %d", ErrNetworkFailure, resp.StatusCode)
	}

	feed, err := ParseFeed(resp.Body)
	if err != nil {
		return Entry{}, err
	}
	return feed.Latest()
}

func isNewer(current, latest string) bool {
	cur, err := ParseVersion(current)
	if err != nil {
		return false
	}
	lat, err := ParseVersion(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}
