package xref

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/model"
)

// retryableError wraps an error to indicate it should trigger a retry.
// Network failures and 5xx responses are transient; everything else is
// returned immediately.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retry executes fn up to attempts times with exponential backoff. It only
// retries errors wrapped in retryableError. Returns the last error if all
// attempts fail, or ctx.Err() if cancelled.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return stderrors.As(err, new(*retryableError))
}

// RemoteResolver resolves against a registry service exposing entries at
// GET {base}/xrefs/{dataSource}/{identifier} as JSON. A 404 means the
// identifier is unknown, mirroring the nil, nil contract of Resolver.
type RemoteResolver struct {
	base   string
	client *http.Client

	attempts int
	delay    time.Duration
}

// NewRemoteResolver creates a resolver against a registry service base URL.
func NewRemoteResolver(baseURL string) *RemoteResolver {
	return &RemoteResolver{
		base:     baseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		attempts: 3,
		delay:    time.Second,
	}
}

// WithClient overrides the HTTP client, for tests and custom transports.
func (r *RemoteResolver) WithClient(c *http.Client) *RemoteResolver {
	r.client = c
	return r
}

// Resolve fetches the entry, retrying transient failures with backoff.
func (r *RemoteResolver) Resolve(ctx context.Context, x model.Xref) (*Entry, error) {
	if err := errors.ValidateDataSourceName(x.DataSource); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/xrefs/%s/%s",
		r.base, url.PathEscape(x.DataSource), url.PathEscape(x.Identifier))

	var entry *Entry
	err := retry(ctx, r.attempts, r.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return &retryableError{err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var e Entry
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "decode registry response")
			}
			entry = &e
			return nil
		case resp.StatusCode == http.StatusNotFound:
			entry = nil
			return nil
		case resp.StatusCode >= 500:
			return &retryableError{err: fmt.Errorf("registry: status %d", resp.StatusCode)}
		default:
			return errors.New(errors.ErrCodeInternal, "registry: status %d", resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

var _ Resolver = (*RemoteResolver)(nil)
