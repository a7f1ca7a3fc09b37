// Package rest implements the RemoteCollection port against a
// resource-per-collection REST backend: one path per collection, JSON bodies,
// server-assigned ids, standard HTTP semantics.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client holds the connection settings shared by all collection clients.
// Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     zerolog.Logger
}

// NewClient returns a Client for the service rooted at baseURL. A zero
// timeout falls back to the package default.
//
// A circuit breaker fronts the transport: once the service stops answering,
// further requests fail fast instead of each waiting out the full timeout.
// Only transport failures count; HTTP error statuses are answers.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "records-api",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("breaker state changed")
		},
	})
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

// do executes one JSON round trip. body (when non-nil) is marshalled as the
// request payload; out (when non-nil) receives the decoded response. A non-2xx
// status maps to an error wrapping domain.ErrRemote, except a 404 which maps
// to the collection's not-found sentinel, supplied by the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, notFound error) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("rest: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("rest: %s %s: %w: %w", method, path, domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return fmt.Errorf("rest: %s %s: %w", method, path, notFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("rest: %s %s: %w: unexpected status %d", method, path, domain.ErrRemote, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("rest: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// collection implements ports.RemoteCollection[T] for one resource path.
type collection[T ports.Entity] struct {
	client   *Client
	path     string // e.g. "/users"
	notFound error  // sentinel wrapped on 404
}

func (col collection[T]) itemPath(id int) string {
	return fmt.Sprintf("%s/%d", col.path, id)
}

func (col collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := col.client.do(ctx, http.MethodGet, col.path, nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (col collection[T]) Get(ctx context.Context, id int) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodGet, col.itemPath(id), nil, nil, &out, col.notFound)
	return out, err
}

func (col collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPost, col.path, nil, draft, &out, nil)
	return out, err
}

func (col collection[T]) Update(ctx context.Context, id int, entity T) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPut, col.itemPath(id), nil, entity, &out, col.notFound)
	return out, err
}

func (col collection[T]) Patch(ctx context.Context, id int, fields map[string]any) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPatch, col.itemPath(id), nil, fields, &out, col.notFound)
	return out, err
}

func (col collection[T]) Delete(ctx context.Context, id int) error {
	return col.client.do(ctx, http.MethodDelete, col.itemPath(id), nil, nil, nil, col.notFound)
}
