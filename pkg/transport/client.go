// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
)

// DefaultUserAgent is sent when no WithUserAgent option is given.
const DefaultUserAgent = "sirius-go/1.0"

// Option configures a Client.
type Option func(*Client)

// Client performs REST calls against one SIRIUS base URL.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	userAgent     string
	defaultHeader http.Header
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger

	customClient bool
	tuning       transportTuning
}

type transportTuning struct {
	totalTimeout          time.Duration
	connectTimeout        time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	insecureSkipVerify    bool
}

func defaultTuning() transportTuning {
	return transportTuning{
		totalTimeout:          defaults.HTTPClientTimeout,
		connectTimeout:        defaults.HTTPConnectTimeout,
		tlsHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		responseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		idleConnTimeout:       defaults.HTTPIdleConnTimeout,
		maxIdleConns:          defaults.HTTPMaxIdleConns,
		maxIdleConnsPerHost:   defaults.HTTPMaxIdleConnsPerHost,
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTotalTimeout bounds the whole exchange including reading the body.
// Zero disables the client timeout and leaves deadlines to the context.
func WithTotalTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.tuning.totalTimeout = timeout
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.tuning.connectTimeout = timeout
		}
	}
}

func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.tuning.tlsHandshakeTimeout = timeout
		}
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.tuning.responseHeaderTimeout = timeout
		}
	}
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.tuning.idleConnTimeout = timeout
		}
	}
}

func WithMaxIdleConns(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.tuning.maxIdleConns = n
		}
	}
}

func WithMaxIdleConnsPerHost(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.tuning.maxIdleConnsPerHost = n
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// Only meant for local SIRIUS instances with self-signed certificates.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		c.tuning.insecureSkipVerify = skip
	}
}

// WithHTTPClient replaces the tuned client. Transport tuning options are
// ignored when a custom client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
			c.customClient = true
		}
	}
}

// WithRateLimit limits outgoing requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithDefaultHeader adds a header sent with every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultHeader.Set(key, value)
	}
}

func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.defaultHeader.Set("Authorization", "Bearer "+token)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the given absolute http(s) base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:       u,
		userAgent:     DefaultUserAgent,
		defaultHeader: http.Header{},
		tuning:        defaultTuning(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if !c.customClient {
		c.httpClient = &http.Client{
			Timeout:   c.tuning.totalTimeout,
			Transport: newHTTPTransport(c.tuning),
		}
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid base url %q", raw), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base url %q must use http or https", raw))
	}
	if u.Host == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base url %q has no host", raw))
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func newHTTPTransport(t transportTuning) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        t.maxIdleConns,
		MaxIdleConnsPerHost: t.maxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout:   t.connectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   t.tlsHandshakeTimeout,
		ResponseHeaderTimeout: t.responseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       t.idleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: t.insecureSkipVerify, //nolint:gosec // opt-in for self-signed local servers
		},
	}
}

// BaseURL returns a copy of the configured base URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// HTTPClient exposes the underlying client, e.g. to close idle connections.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
