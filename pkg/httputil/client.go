package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mlorenz/picset/pkg/errors"
)

// maxDocumentSize bounds how much of a response body is read. Image-resource
// documents are small; anything larger is not one.
const maxDocumentSize = 4 << 20 // 4 MiB

// Document is a fetched image-resource document plus the content type the
// server declared, which decides whether it is hydrated as JSON or HTML.
type Document struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
}

// Client fetches hypermedia documents over HTTP with retry for transient
// failures. The zero value is not usable; create one with NewClient.
type Client struct {
	http     *http.Client
	attempts int
	delay    time.Duration
}

// NewClient creates a client with the given timeout. Transient failures are
// retried up to 3 times with exponential backoff starting at one second.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		attempts: 3,
		delay:    time.Second,
	}
}

// FetchDocument retrieves the image-resource document at url.
// 5xx responses and network errors are retried; 4xx responses are permanent.
func (c *Client) FetchDocument(ctx context.Context, url string) (*Document, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	var doc *Document
	err := Retry(ctx, c.attempts, c.delay, func() error {
		d, err := c.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "image resource %s not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{
			Err:   errors.New(errors.ErrCodeNetwork, "fetch %s: server returned %s", url, resp.Status),
			After: retryAfter(resp),
		}
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	if len(body) > maxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidEntity,
			"document at %s exceeds %d bytes", url, maxDocumentSize)
	}

	return &Document{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// retryAfter reads the Retry-After header as a delay in seconds. The
// HTTP-date form is rare on APIs and is ignored.
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// String implements fmt.Stringer for logging.
func (d *Document) String() string {
	return fmt.Sprintf("document(%s, %d bytes)", d.ContentType, len(d.Body))
}
