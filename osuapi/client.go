// Package osuapi is a small client for the osu! web API v2, covering
// the beatmap metadata lookups the geometry pipeline needs.
package osuapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/levigross/grequests"
)

const (
	apiBase  = "https://osu.ppy.sh/api/v2"
	tokenURL = "https://osu.ppy.sh/oauth/token"

	// the API caps bulk beatmap lookups
	maxBeatmapsPerRequest = 50

	// tokenMargin is how close to expiry a grant may get before the
	// next request exchanges the credentials again.
	tokenMargin = time.Minute
)

// Credentials identifies an OAuth client registered with osu!.
type Credentials struct {
	ClientID     int
	ClientSecret string
}

// Token is an OAuth client-credentials grant.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Client calls the osu! API v2, re-exchanging its credentials whenever
// the access token nears expiry. Construct with NewClient; the zero
// value is not usable.
type Client struct {
	creds   Credentials
	limiter *Limiter

	mu        sync.Mutex
	token     Token
	expiresAt time.Time
}

// NewClient exchanges the credentials for an access token.
func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	c := &Client{
		creds:   creds,
		limiter: NewLimiter(30, time.Minute, 2),
	}
	if err := c.refreshToken(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) refreshToken(ctx context.Context) error {
	resp, err := grequests.Post(tokenURL, grequests.FromRequestOptions(&grequests.RequestOptions{
		Context: ctx,
		Data: map[string]string{
			"client_id":     fmt.Sprintf("%d", c.creds.ClientID),
			"client_secret": c.creds.ClientSecret,
			"grant_type":    "client_credentials",
			"scope":         "public",
		},
		Headers:        map[string]string{"Accept": "application/json"},
		RequestTimeout: 15 * time.Second,
	}))
	if err != nil {
		return fmt.Errorf("osuapi: token request: %w", err)
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("osuapi: token request: status %d: %s", resp.StatusCode, resp.String())
	}

	var tok Token
	if err := resp.JSON(&tok); err != nil {
		return fmt.Errorf("osuapi: decode token: %w", err)
	}

	c.mu.Lock()
	c.token = tok
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.mu.Unlock()
	return nil
}

// tokenStale reports whether the grant is within the refresh margin of
// expiring at the given instant.
func (c *Client) tokenStale(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt.Sub(now) <= tokenMargin
}

// authHeader returns the Authorization value for the next request,
// refreshing the grant first if it is about to lapse.
func (c *Client) authHeader(ctx context.Context) (string, error) {
	if c.tokenStale(time.Now()) {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token.TokenType + " " + c.token.AccessToken, nil
}

type beatmapsQuery struct {
	IDs []int `url:"ids[]"`
}

type beatmapsResponse struct {
	Beatmaps []Beatmap `json:"beatmaps"`
}

// Beatmaps fetches metadata for up to 50 beatmap IDs at once.
func (c *Client) Beatmaps(ctx context.Context, ids []int) ([]Beatmap, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > maxBeatmapsPerRequest {
		return nil, fmt.Errorf("osuapi: at most %d beatmaps per request, got %d", maxBeatmapsPerRequest, len(ids))
	}

	auth, err := c.authHeader(ctx)
	if err != nil {
		return nil, err
	}

	release := c.limiter.Acquire()
	defer release()
	c.limiter.Wait()

	resp, err := grequests.Get(apiBase+"/beatmaps", grequests.FromRequestOptions(&grequests.RequestOptions{
		Context:     ctx,
		QueryStruct: &beatmapsQuery{IDs: ids},
		Headers: map[string]string{
			"Accept":        "application/json",
			"Authorization": auth,
		},
		RequestTimeout: 2 * time.Minute,
	}))
	if err != nil {
		return nil, fmt.Errorf("osuapi: beatmaps request: %w", err)
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, fmt.Errorf("osuapi: beatmaps request: status %d: %s", resp.StatusCode, resp.String())
	}

	var out beatmapsResponse
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("osuapi: decode beatmaps: %w", err)
	}
	return out.Beatmaps, nil
}

// Beatmap fetches metadata for a single beatmap ID.
func (c *Client) Beatmap(ctx context.Context, id int) (*Beatmap, error) {
	maps, err := c.Beatmaps(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("osuapi: beatmap %d not found", id)
	}
	return &maps[0], nil
}
