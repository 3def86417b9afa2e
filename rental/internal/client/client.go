// Package client talks to the services the rental lifecycle depends on:
// reservations, users, vehicles and contracts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/pkg/circuit_breaker"
	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// StatusError is a non-2xx answer from a collaborator.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Ignored keeps 4xx answers out of the breaker's failure count.
func (e *StatusError) Ignored() bool {
	return e.Code < http.StatusInternalServerError
}

type base struct {
	log     *zap.Logger
	client  *http.Client
	addr    string
	cb      circuit_breaker.CircuitBreaker
	retries int
	backoff time.Duration
}

func newBase(log *zap.Logger, srv config.Collaborator, cfg config.HTTPClient) base {
	return base{
		log:     log,
		client:  &http.Client{Timeout: cfg.Timeout},
		addr:    net.JoinHostPort(srv.Host, srv.Port),
		cb:      circuit_breaker.New(100, time.Second, 0.2, 2),
		retries: cfg.Retries,
		backoff: cfg.Backoff,
	}
}

func (b *base) CB() circuit_breaker.CircuitBreaker {
	return b.cb
}

// do sends in as JSON and decodes the answer into out. Transport errors and
// 5xx answers are retried with a linear backoff.
func (b *base) do(ctx context.Context, method, path, idempotencyKey string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return err
		}
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = b.cb.Call(func() error {
			return b.send(ctx, method, path, idempotencyKey, body, out)
		})
		if err == nil || attempt >= b.retries || !retryable(err) {
			break
		}
		b.log.Warn("retry",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.backoff * time.Duration(attempt+1)):
		}
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusNotFound:
			return errors.Wrapf(errs.ErrNotFound, "%s %s", method, path)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.Wrapf(errs.ErrValidation, "%s %s: %s", method, path, se.Body)
		}
	}
	return err
}

func (b *base) send(ctx context.Context, method, path, idempotencyKey string, body []byte, out any) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("http://%s%s", b.addr, path), rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, circuit_breaker.ErrOpenCB) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	return true
}
