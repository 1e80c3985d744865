// Package backend is the client of the travel REST API and the ML service.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/metrics"
)

// ErrCircuitOpen - the ML breaker rejected the call without contacting the service
var ErrCircuitOpen = errors.New("ml service circuit open")

type Client struct {
	gw        *Gateway
	breaker   *gobreaker.CircuitBreaker[*Response]
	mlTimeout time.Duration
	logger    *zap.Logger
}

var _ repository.BackendAPI = (*Client)(nil)

// NewClient создает клиент REST API и ML сервиса
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	gw := NewGateway(&http.Client{}, cfg.Backend.BaseURL, cfg.Backend.RequestTimeout, logger)
	return NewClientWithGateway(gw, cfg.ML, logger)
}

func NewClientWithGateway(gw *Gateway, ml config.MLConfig, logger *zap.Logger) *Client {
	failures := ml.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	c := &Client{gw: gw, mlTimeout: ml.RequestTimeout, logger: logger}
	c.breaker = gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        "ml-service",
		MaxRequests: 1,
		Timeout:     ml.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.MLBreakerState.Set(float64(to))
			logger.Warn("ML circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// Gateway exposes the underlying authenticated gateway.
func (c *Client) Gateway() *Gateway {
	return c.gw
}

func (c *Client) do(ctx context.Context, sess repository.Session, req Request, out interface{}) error {
	resp, err := c.gw.Do(ctx, sess, req)
	if err != nil {
		return err
	}
	return decode(resp, req, out)
}

// doML runs req behind the ML circuit breaker. Transport errors and 5xx count as failures.
func (c *Client) doML(ctx context.Context, sess repository.Session, req Request, out interface{}) error {
	req.Timeout = c.mlTimeout
	resp, err := c.breaker.Execute(func() (*Response, error) {
		resp, err := c.gw.Do(ctx, sess, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, apiError(resp, req)
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return err
	}
	return decode(resp, req, out)
}

func apiError(resp *Response, req Request) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.Path,
		Body:       resp.Body,
	}
}

func decode(resp *Response, req Request, out interface{}) error {
	if !resp.OK() {
		return apiError(resp, req)
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", req.Path, err)
	}
	return nil
}
