package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"

	"pubg-tracker/internal/config"
	"pubg-tracker/internal/constants"
	"pubg-tracker/internal/errs"
)

const backoffBase = 500 * time.Millisecond

// Client talks to the PUBG REST API for a single platform shard. It is the
// only component allowed to perform network I/O.
type Client struct {
	apiKey     string
	baseURL    string
	maxRetries int
	client     *fasthttp.Client
	logger     zerolog.Logger

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo tracks the provider-declared request quota, updated from
// response headers after every response.
type RateLimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	// a retry budget below one attempt would underflow the backoff counter
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.ShardURL(),
		maxRetries: maxRetries,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
		rateLimit: RateLimitInfo{
			Limit:     10,
			Remaining: 10,
			Reset:     time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// RateLimit returns the last observed quota state.
func (c *Client) RateLimit() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-RateLimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-RateLimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-RateLimit-Reset")); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimit.Reset = time.Unix(val, 0)
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// markExhausted records a 429: quota is zero and resets at the header time,
// or after a safety margin when the provider sent none.
func (c *Client) markExhausted(resp *fasthttp.Response) {
	reset := time.Now().Add(constants.RateLimitSafetyMargin)
	if header := string(resp.Header.Peek("X-RateLimit-Reset")); header != "" {
		if val, err := strconv.ParseInt(header, 10, 64); err == nil {
			reset = time.Unix(val, 0).Add(1 * time.Second)
		}
	}

	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	c.rateLimit.Remaining = 0
	c.rateLimit.Reset = reset
	c.rateLimit.UpdatedAt = time.Now()
}

// waitForReset blocks until the quota reset time has elapsed, polling in
// small steps so progress stays visible and cancellation is honored.
func (c *Client) waitForReset(ctx context.Context) error {
	for {
		info := c.RateLimit()
		if info.Remaining > 0 || !time.Now().Before(info.Reset) {
			c.logger.Info().Msg("rate limit reset, resuming requests")
			return nil
		}

		c.logger.Info().
			Dur("wait_remaining", time.Until(info.Reset)).
			Msg("rate limit exhausted, waiting for reset")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.RateLimitPollInterval):
		}
	}
}

// Request performs an authenticated GET against baseURL/endpoint and returns
// the response body verbatim. 429 is never surfaced: the call waits for the
// quota to reset and repeats. 404 is terminal and maps to the not-found
// kind. Transport failures and other statuses are retried with exponential
// backoff before failing as an API request error.
func (c *Client) Request(ctx context.Context, endpoint string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	for {
		body, rateLimited, err := c.attempt(ctx, url)
		if err != nil {
			return nil, err
		}
		if rateLimited {
			if err := c.waitForReset(ctx); err != nil {
				return nil, err
			}
			continue
		}
		return body, nil
	}
}

func (c *Client) attempt(ctx context.Context, url string) (body []byte, rateLimited bool, err error) {
	backoff := retry.WithMaxRetries(uint64(c.maxRetries-1), retry.NewExponential(backoffBase))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/vnd.api+json")

		var doErr error
		if deadline, ok := ctx.Deadline(); ok {
			doErr = c.client.DoDeadline(req, resp, deadline)
		} else {
			doErr = c.client.Do(req, resp)
		}
		if doErr != nil {
			c.logger.Warn().Err(doErr).Str("url", url).Msg("transport error, will retry")
			return retry.RetryableError(doErr)
		}

		switch status := resp.StatusCode(); {
		case status == fasthttp.StatusTooManyRequests:
			c.markExhausted(resp)
			rateLimited = true
			return nil
		case status == fasthttp.StatusNotFound:
			return &errs.Error{Code: errs.CodePlayerNotFound, Message: fmt.Sprintf("resource not found: %s", url)}
		case status >= 200 && status < 300:
			c.updateRateLimit(resp)
			body = append([]byte(nil), resp.Body()...)
			return nil
		default:
			c.logger.Warn().Int("status", status).Str("url", url).Msg("unexpected status, will retry")
			return retry.RetryableError(fmt.Errorf("unexpected status %d", status))
		}
	})

	if err != nil {
		var coded *errs.Error
		if errors.As(err, &coded) {
			return nil, false, coded
		}
		return nil, false, errs.APIRequest(err)
	}
	return body, rateLimited, nil
}

func get[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	body, err := c.Request(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errs.APIRequest(fmt.Errorf("decode %s: %w", endpoint, err))
	}
	return &result, nil
}

// GetPlayerByName looks a player up by display name. Name lookup is
// case-sensitive upstream.
func (c *Client) GetPlayerByName(ctx context.Context, name string) (*PlayersResponse, error) {
	return get[PlayersResponse](ctx, c, fmt.Sprintf("players?filter[playerNames]=%s", name))
}

func (c *Client) GetPlayerByID(ctx context.Context, playerID string) (*SinglePlayerResponse, error) {
	return get[SinglePlayerResponse](ctx, c, fmt.Sprintf("players/%s", playerID))
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	return get[MatchResponse](ctx, c, fmt.Sprintf("matches/%s", matchID))
}

func (c *Client) GetSeasons(ctx context.Context) (*SeasonsResponse, error) {
	return get[SeasonsResponse](ctx, c, "seasons")
}

func (c *Client) GetRankedStats(ctx context.Context, playerID, seasonID string) (*RankedStatsResponse, error) {
	return get[RankedStatsResponse](ctx, c, fmt.Sprintf("players/%s/seasons/%s/ranked", playerID, seasonID))
}

func (c *Client) GetClan(ctx context.Context, clanID string) (*ClanResponse, error) {
	return get[ClanResponse](ctx, c, fmt.Sprintf("clans/%s", clanID))
}
