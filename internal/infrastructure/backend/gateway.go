package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/metrics"
)

// RefreshPath - token exchange endpoint
const RefreshPath = "/api/auth/refresh-token"

var errRefreshFailed = errors.New("token refresh failed")

// Request - one call through the gateway
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	// Endpoint labels metrics; defaults to Path.
	Endpoint string
	// Timeout overrides the gateway default for this call.
	Timeout time.Duration
}

// Response - buffered downstream answer
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Gateway attaches the session bearer token and, on a 401, performs one
// token refresh and one retry. Refreshes of the same session are shared
// between concurrent callers.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
	flight     singleflight.Group
}

func NewGateway(httpClient *http.Client, baseURL string, timeout time.Duration, logger *zap.Logger) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Gateway{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		logger:     logger,
	}
}

// Do issues req. sess may be nil for unauthenticated calls, which are never
// refreshed. Network errors are returned as is; HTTP statuses, including a
// final 401, come back in the Response.
func (g *Gateway) Do(ctx context.Context, sess repository.Session, req Request) (*Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		if body, err = json.Marshal(req.Body); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	token := ""
	if sess != nil {
		token = sess.AccessToken()
	}

	resp, err := g.send(ctx, req, body, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || sess == nil {
		return resp, nil
	}

	fresh, err := g.refresh(ctx, sess, token)
	if err != nil {
		g.logger.Info("Token refresh failed, session cleared",
			zap.String("namespace", sess.Namespace()),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return resp, nil
	}

	retry, err := g.send(ctx, req, body, fresh)
	if err != nil {
		return nil, err
	}
	metrics.GatewayRetries.WithLabelValues(strconv.Itoa(retry.StatusCode)).Inc()
	return retry, nil
}

// refresh returns an access token newer than stale, exchanging the refresh
// token at most once per concurrent burst of 401s.
func (g *Gateway) refresh(ctx context.Context, sess repository.Session, stale string) (string, error) {
	if cur := sess.AccessToken(); cur != "" && cur != stale {
		return cur, nil
	}

	v, err, _ := g.flight.Do(sess.Namespace(), func() (interface{}, error) {
		return g.exchange(context.WithoutCancel(ctx), sess)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (g *Gateway) exchange(ctx context.Context, sess repository.Session) (string, error) {
	refreshToken := sess.RefreshToken()
	if refreshToken == "" {
		metrics.GatewayRefreshes.WithLabelValues("no_refresh_token").Inc()
		g.logOut(ctx, sess)
		return "", fmt.Errorf("%w: no refresh token", errRefreshFailed)
	}

	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to encode refresh request: %w", err)
	}

	resp, err := g.send(ctx, Request{Method: http.MethodPost, Path: RefreshPath, Endpoint: "auth.refresh"}, body, "")
	if err != nil {
		metrics.GatewayRefreshes.WithLabelValues("failure").Inc()
		g.logOut(ctx, sess)
		return "", fmt.Errorf("%w: %v", errRefreshFailed, err)
	}
	if !resp.OK() {
		metrics.GatewayRefreshes.WithLabelValues("failure").Inc()
		g.logOut(ctx, sess)
		return "", fmt.Errorf("%w: status %d", errRefreshFailed, resp.StatusCode)
	}

	creds, err := decodeCredentials(resp.Body)
	if err != nil || creds.AccessToken == "" {
		metrics.GatewayRefreshes.WithLabelValues("failure").Inc()
		g.logOut(ctx, sess)
		return "", fmt.Errorf("%w: malformed refresh response", errRefreshFailed)
	}

	// The user is kept as is.
	creds.User = nil
	if err := sess.SetCredentials(ctx, creds); err != nil {
		metrics.GatewayRefreshes.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("store refreshed credentials: %w", err)
	}

	metrics.GatewayRefreshes.WithLabelValues("success").Inc()
	g.logger.Debug("Access token refreshed", zap.String("namespace", sess.Namespace()))
	return creds.AccessToken, nil
}

func (g *Gateway) logOut(ctx context.Context, sess repository.Session) {
	if err := sess.LogOut(ctx); err != nil {
		g.logger.Error("Failed to clear session",
			zap.String("namespace", sess.Namespace()),
			zap.Error(err),
		)
	}
}

func (g *Gateway) send(ctx context.Context, req Request, body []byte, token string) (*Response, error) {
	timeout := g.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := g.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordBackendRequest(req.Method, endpoint, 0, time.Since(start))
		g.logger.Error("Failed to execute request",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	metrics.RecordBackendRequest(req.Method, endpoint, resp.StatusCode, time.Since(start))

	g.logger.Debug("Backend call",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// authResponse accepts both token field spellings used by the backend.
type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

func decodeCredentials(body []byte) (domain.Credentials, error) {
	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return domain.Credentials{}, err
	}
	access := ar.AccessToken
	if access == "" {
		access = ar.Token
	}
	return domain.Credentials{AccessToken: access, RefreshToken: ar.RefreshToken, User: ar.User}, nil
}
