// Package client talks to the restaurant API: it fetches one restaurant with
// its reviews and posts new reviews. Each call is a single attempt.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/neotica/restaurantreview/pkg/model"
)

// DefaultBaseURL is the public restaurant API.
const DefaultBaseURL = "https://restaurant-api.dicoding.dev"

// DefaultTimeout bounds a single request when the caller does not choose one.
const DefaultTimeout = 10 * time.Second

// MaxBodySize is the max bytes read from a response (2MB).
const MaxBodySize = 2 * 1024 * 1024

// Picture sizes served under /images/{size}/{pictureId}.
const (
	PictureSmall  = "small"
	PictureMedium = "medium"
	PictureLarge  = "large"
)

// detailResponse is the body of GET /detail/{id}.
type detailResponse struct {
	Error      bool              `json:"error"`
	Message    string            `json:"message"`
	Restaurant *model.Restaurant `json:"restaurant"`
}

// reviewResponse is the body of POST /review. The server sends the full
// review list; detail fields are present only on richer deployments.
type reviewResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	model.Restaurant
}

// Client is an HTTP client for the restaurant API. It keeps no state
// between calls and is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   *time.Duration
	userAgent string
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through a copy of hc. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "rr",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.http = &hc
	return c, nil
}

// FetchRestaurant loads the restaurant with the given id, including its reviews.
func (c *Client) FetchRestaurant(ctx context.Context, id string) (model.Restaurant, error) {
	if id == "" {
		return model.Restaurant{}, ErrEmptyID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/detail/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("building fetch request: %w", err)
	}

	var body detailResponse
	if err := c.do(req, "fetch", &body); err != nil {
		return model.Restaurant{}, err
	}
	if body.Error {
		return model.Restaurant{}, badResponse("fetch", 0, nonEmpty(body.Message, "server reported an error"))
	}
	if body.Restaurant == nil {
		return model.Restaurant{}, badResponse("fetch", 0, "response has no restaurant")
	}
	return *body.Restaurant, nil
}

// PostReview adds a review to the restaurant and returns the server's
// updated snapshot. Reviews in the result are the complete server list.
func (c *Client) PostReview(ctx context.Context, id, reviewerName, text string) (model.Restaurant, error) {
	if id == "" {
		return model.Restaurant{}, ErrEmptyID
	}
	if text == "" {
		return model.Restaurant{}, ErrEmptyReview
	}

	form := url.Values{}
	form.Set("id", id)
	form.Set("name", reviewerName)
	form.Set("review", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/review", strings.NewReader(form.Encode()))
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("building post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body reviewResponse
	if err := c.do(req, "post", &body); err != nil {
		return model.Restaurant{}, err
	}
	if body.Error {
		return model.Restaurant{}, badResponse("post", 0, nonEmpty(body.Message, "server reported an error"))
	}
	if body.Restaurant.Reviews == nil {
		return model.Restaurant{}, badResponse("post", 0, "response has no reviews")
	}
	return body.Restaurant, nil
}

// PictureURL returns the image URL for a restaurant picture.
func PictureURL(baseURL, size, pictureID string) string {
	if pictureID == "" {
		return ""
	}
	if size == "" {
		size = PictureLarge
	}
	return strings.TrimRight(baseURL, "/") + "/images/" + size + "/" + url.PathEscape(pictureID)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "url", req.URL.String(), "error", err)
		return transportError(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request complete",
		"op", op,
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return transportError(op, fmt.Errorf("reading body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return badResponse(op, resp.StatusCode, statusMessage(resp.StatusCode, data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return badResponse(op, 0, fmt.Sprintf("decoding body: %v", err))
	}
	return nil
}

// statusMessage prefers the server's own message over the generic status text.
func statusMessage(status int, data []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &env) == nil && env.Message != "" {
		return env.Message
	}
	return http.StatusText(status)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
