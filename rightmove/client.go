package rightmove

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	typeaheadURL = "https://los.rightmove.co.uk/typeahead"
	searchAPIURL = Base + "/api/_search"

	rentSearchPath = "/property-to-rent/find.html"
	buySearchPath  = "/property-for-sale/find.html"

	defaultAccept = "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8"
	acceptJSON    = "application/json"

	maxAttempts    = 3
	attemptTimeout = 15 * time.Second
)

var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
}

// Client talks to the origin. All network access for location resolution,
// search, and detail extraction flows through fetch; callers see only soft
// failures.
type Client struct {
	http    *retryablehttp.Client
	limiter *rate.Limiter

	// pickAgent is drawn once per attempt; tests pin it for determinism.
	pickAgent func() string

	baseURL   string
	apiURL    string
	lookupURL string
}

// NewClient builds a Client with the production endpoints and no politeness
// limiter. Pass a limiter to space out request starts when hitting the live
// origin from a loop.
func NewClient(limiter *rate.Limiter) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxAttempts - 1
	rc.HTTPClient.Timeout = attemptTimeout
	rc.Logger = nil
	rc.CheckRetry = checkRetry
	rc.Backoff = backoff

	c := &Client{
		http:      rc,
		limiter:   limiter,
		pickAgent: func() string { return userAgents[rand.Intn(len(userAgents))] },
		baseURL:   Base,
		apiURL:    searchAPIURL,
		lookupURL: typeaheadURL,
	}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		req.Header.Set("User-Agent", c.pickAgent())
	}
	return c
}

// checkRetry retries transport errors, 429s, and other non-2xx statuses.
// A 403 means the origin has decided to block us; burning the remaining
// attempts on it gains nothing.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode == http.StatusForbidden {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return true, nil
	}
	return false, nil
}

// backoff sleeps 2^(attempt+1) seconds after a 429 and attempt+1 seconds
// after anything else, matching the origin's observed rate-limit windows.
func backoff(_, _ time.Duration, attempt int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return time.Duration(1<<(attempt+1)) * time.Second
	}
	return time.Duration(attempt+1) * time.Second
}

type fetchOpts struct {
	referer string
	accept  string
}

// fetch issues a GET with browser-like headers and the retry/backoff policy
// above. It returns the body text, or ok=false on a block, exhausted
// retries, or any transport failure. No error ever escapes to callers.
func (c *Client) fetch(ctx context.Context, rawURL string, params url.Values, opt fetchOpts) (string, bool) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", false
		}
	}

	full := rawURL
	if len(params) > 0 {
		full = rawURL + "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return "", false
	}
	accept := opt.accept
	if accept == "" {
		accept = defaultAccept
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	if opt.referer != "" {
		req.Header.Set("Referer", opt.referer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}
	return string(body), true
}

// fetchPage fetches a site page with the site itself as referer.
func (c *Client) fetchPage(ctx context.Context, rawURL string, params url.Values) (string, bool) {
	return c.fetch(ctx, rawURL, params, fetchOpts{referer: c.baseURL + "/"})
}
