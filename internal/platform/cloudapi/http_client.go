package cloudapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the API signs requests with HMAC-SHA1
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/imamik/dcdeploy/internal/util/retry"
)

// Async job states returned by queryAsyncJobResult.
const (
	jobPending   = 0
	jobSucceeded = 1
	jobFailed    = 2
)

// HTTPClient talks to the management server over its signed query API.
type HTTPClient struct {
	endpoint  string
	apiKey    string
	secretKey string

	http    *http.Client
	limiter *rate.Limiter

	maxRetries   int
	initialDelay time.Duration
	onRetry      func(command string, attempt int, err error)

	jobPollInterval time.Duration
	jobTimeout      time.Duration
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(h *HTTPClient) {
		h.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for lab installs
		}
	}
}

// WithRequestTimeout bounds a single HTTP round trip.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(h *HTTPClient) {
		if perSecond <= 0 {
			h.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithRetry sets how transport failures are retried.
func WithRetry(maxRetries int, initialDelay time.Duration) Option {
	return func(h *HTTPClient) {
		h.maxRetries = maxRetries
		h.initialDelay = initialDelay
	}
}

// WithRetryHook registers a callback for every retried request.
func WithRetryHook(fn func(command string, attempt int, err error)) Option {
	return func(h *HTTPClient) { h.onRetry = fn }
}

// WithJobPolling sets the async job poll interval and overall job timeout.
func WithJobPolling(interval, timeout time.Duration) Option {
	return func(h *HTTPClient) {
		h.jobPollInterval = interval
		h.jobTimeout = timeout
	}
}

// NewHTTPClient creates a client for the API at endpoint.
func NewHTTPClient(endpoint, apiKey, secretKey string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint:        strings.TrimRight(endpoint, "?"),
		apiKey:          apiKey,
		secretKey:       secretKey,
		http:            &http.Client{Timeout: 60 * time.Second},
		limiter:         rate.NewLimiter(rate.Limit(10), 1),
		maxRetries:      3,
		initialDelay:    time.Second,
		jobPollInterval: 2 * time.Second,
		jobTimeout:      10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign computes the request signature for an encoded query string.
func Sign(query, secretKey string) string {
	canonical := strings.ToLower(strings.ReplaceAll(query, "+", "%20"))
	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// buildURL returns the signed request URL for command.
func (c *HTTPClient) buildURL(command string, params url.Values) string {
	values := url.Values{}
	for k, v := range params {
		values[k] = v
	}
	values.Set("command", command)
	values.Set("response", "json")
	values.Set("apiKey", c.apiKey)

	query := strings.ReplaceAll(values.Encode(), "+", "%20")
	signature := Sign(query, c.secretKey)
	return c.endpoint + "?" + query + "&signature=" + url.QueryEscape(signature)
}

// call executes command and returns the fields of its response object.
// Async commands are followed until the job finishes and the job result is returned.
func (c *HTTPClient) call(ctx context.Context, command string, params url.Values) (map[string]json.RawMessage, error) {
	body, err := c.request(ctx, command, params)
	if err != nil {
		return nil, err
	}

	if raw, ok := body["jobid"]; ok {
		if _, done := body["jobstatus"]; !done || isPendingStatus(body["jobstatus"]) {
			var jobID string
			if err := json.Unmarshal(raw, &jobID); err != nil {
				return nil, fmt.Errorf("%s: invalid job id: %w", command, err)
			}
			return c.waitForJob(ctx, command, jobID)
		}
	}

	return body, nil
}

// request performs command with retries on transport failures.
func (c *HTTPClient) request(ctx context.Context, command string, params url.Values) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage

	err := retry.WithExponentialBackoff(ctx, func() error {
		resp, err := c.do(ctx, command, params)
		if err != nil {
			return err
		}
		body = resp
		return nil
	}, retry.WithMaxRetries(c.maxRetries), retry.WithInitialDelay(c.initialDelay), retry.WithOnRetry(func(attempt int, err error) {
		if c.onRetry != nil {
			c.onRetry(command, attempt, err)
		}
	}))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	return body, nil
}

// do performs one signed request. Errors that should not be retried are wrapped with retry.Fatal.
func (c *HTTPClient) do(ctx context.Context, command string, params url.Values) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, retry.Fatal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(command, params), nil)
	if err != nil {
		return nil, retry.Fatal(fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.Fatal(ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	body, err := decodeEnvelope(command, data)
	if err != nil {
		if resp.StatusCode >= http.StatusBadRequest && !IsAPIError(err) {
			return nil, retry.Fatal(&APIError{Command: command, Code: resp.StatusCode, Text: resp.Status})
		}
		return nil, retry.Fatal(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, retry.Fatal(&APIError{Command: command, Code: resp.StatusCode, Text: resp.Status})
	}
	return body, nil
}

// decodeEnvelope unwraps {"<command>response": {...}} and surfaces API errors.
func decodeEnvelope(command string, data []byte) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", command, err)
	}

	raw, ok := envelope[strings.ToLower(command)+"response"]
	if !ok {
		// Error responses are keyed by "errorresponse" on some versions.
		raw, ok = envelope["errorresponse"]
	}
	if !ok {
		return nil, fmt.Errorf("unexpected %s response: missing response object", command)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", command, err)
	}
	if apiErr := errorFromBody(command, body); apiErr != nil {
		return nil, apiErr
	}
	return body, nil
}

func errorFromBody(command string, body map[string]json.RawMessage) *APIError {
	rawCode, ok := body["errorcode"]
	if !ok {
		return nil
	}
	apiErr := &APIError{Command: command}
	_ = json.Unmarshal(rawCode, &apiErr.Code)
	_ = json.Unmarshal(body["errortext"], &apiErr.Text)
	return apiErr
}

func isPendingStatus(raw json.RawMessage) bool {
	var status int
	if err := json.Unmarshal(raw, &status); err != nil {
		return true
	}
	return status == jobPending
}

type asyncJobResult struct {
	JobStatus     int                        `json:"jobstatus"`
	JobResultCode int                        `json:"jobresultcode"`
	JobResult     map[string]json.RawMessage `json:"jobresult"`
}

// waitForJob polls queryAsyncJobResult until the job leaves the pending state.
func (c *HTTPClient) waitForJob(ctx context.Context, command, jobID string) (map[string]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.jobTimeout)
	defer cancel()

	ticker := time.NewTicker(c.jobPollInterval)
	defer ticker.Stop()

	for {
		body, err := c.request(ctx, "queryAsyncJobResult", url.Values{"jobid": {jobID}})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to query job %s: %w", command, jobID, err)
		}

		var job asyncJobResult
		if err := remarshal(body, &job); err != nil {
			return nil, fmt.Errorf("%s: failed to decode job %s: %w", command, jobID, err)
		}

		switch job.JobStatus {
		case jobSucceeded:
			return job.JobResult, nil
		case jobFailed:
			if apiErr := errorFromBody(command, job.JobResult); apiErr != nil {
				return nil, apiErr
			}
			return nil, &APIError{Command: command, Code: job.JobResultCode, Text: "async job failed"}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: timed out waiting for job %s: %w", command, jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func remarshal(body map[string]json.RawMessage, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// decodeObject decodes body[key] into out. A one-element array is accepted for
// commands that wrap their single result in a list.
func decodeObject(command string, body map[string]json.RawMessage, key string, out any) error {
	raw, ok := body[key]
	if !ok {
		return fmt.Errorf("%s: response has no %q object", command, key)
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%s: failed to decode %s: %w", command, key, err)
		}
		if len(items) == 0 {
			return fmt.Errorf("%s: response has empty %q list", command, key)
		}
		raw = items[0]
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: failed to decode %s: %w", command, key, err)
	}
	return nil
}

// decodeList decodes body[key] into out. A missing key means an empty list.
func decodeList[T any](command string, body map[string]json.RawMessage, key string) ([]T, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: failed to decode %s: %w", command, key, err)
	}
	return items, nil
}

// successFlag accepts both a JSON boolean and the string form used by older servers.
type successFlag bool

func (s *successFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = successFlag(b)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = successFlag(strings.EqualFold(str, "true"))
	return nil
}

type deleteResult struct {
	Success     successFlag `json:"success"`
	DisplayText string      `json:"displaytext"`
}

// callDelete executes a delete command and checks its success flag.
func (c *HTTPClient) callDelete(ctx context.Context, command string, params url.Values) error {
	body, err := c.call(ctx, command, params)
	if err != nil {
		return err
	}
	var result deleteResult
	if err := remarshal(body, &result); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", command, err)
	}
	if !result.Success {
		text := result.DisplayText
		if text == "" {
			text = "server reported failure"
		}
		return &APIError{Command: command, Text: text}
	}
	return nil
}
